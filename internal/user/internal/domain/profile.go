// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package domain

// Profile 商城侧的用户扩展档案, 账号体系由外部维护
type Profile struct {
	ID  int64
	Uid int64
	// GatewayCustomerID 支付网关侧的客户标识, 首次扣款后回填
	GatewayCustomerID  string
	OneClickPurchasing bool
	Ctime              int64
	Utime              int64
}
