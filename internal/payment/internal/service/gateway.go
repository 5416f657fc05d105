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

package service

import "context"

// GatewayService 外部支付网关的能力抽象
// 同步扣款, 成功返回网关侧的扣款凭证号
//
//go:generate mockgen -source=./gateway.go -package=paymentmocks -destination=../../mocks/gateway.mock.go GatewayService
type GatewayService interface {
	Charge(ctx context.Context, uid int64, amount int64) (chargeSN string, err error)
}
