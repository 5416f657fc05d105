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

package order

import (
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/service"
)

type (
	Service      = service.Service
	Order        = domain.Order
	OrderLine    = domain.OrderLine
	Coupon       = domain.Coupon
	Status       = domain.OrderStatus
	RefundStatus = domain.RefundStatus
)

const (
	StatusCart       = domain.StatusCart
	StatusOrdered    = domain.StatusOrdered
	StatusDelivering = domain.StatusDelivering
	StatusReceived   = domain.StatusReceived

	RefundStatusNone      = domain.RefundStatusNone
	RefundStatusRequested = domain.RefundStatusRequested
	RefundStatusGranted   = domain.RefundStatusGranted
)

var (
	ErrNotInCart         = service.ErrNotInCart
	ErrEmptyCart         = service.ErrEmptyCart
	ErrAddressRequired   = service.ErrAddressRequired
	ErrInvalidTransition = service.ErrInvalidTransition
	ErrCartChanged       = service.ErrCartChanged
)

type Module struct {
	Svc Service
}
