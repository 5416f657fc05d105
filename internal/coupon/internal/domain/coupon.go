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

// Coupon 固定面额的抵扣券
// 不绑定用户, 同一个码可以被多个订单重复使用
type Coupon struct {
	ID   int64
	Code string
	// Amount 抵扣金额;单位为分, 999表示9.99元
	Amount int64
	Ctime  int64
	Utime  int64
}
