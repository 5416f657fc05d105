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

package payment

import (
	"github.com/ecodeclub/estore/internal/payment/internal/domain"
	"github.com/ecodeclub/estore/internal/payment/internal/repository"
	"github.com/ecodeclub/estore/internal/payment/internal/service"
)

type (
	Service = service.Service
	// GatewayService 由外部支付网关适配层实现
	GatewayService = service.GatewayService
	Payment        = domain.Payment
	// Recorder 供订单结算事务落支付记录使用
	Recorder = repository.PaymentRecorder
)

var ErrPaymentFailed = service.ErrPaymentFailed

type Module struct {
	Svc      Service
	Recorder Recorder
}
