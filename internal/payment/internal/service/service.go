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

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/estore/internal/payment/internal/domain"
	"github.com/ecodeclub/estore/internal/payment/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

// ErrPaymentFailed 网关拒绝或者超时
var ErrPaymentFailed = errors.New("支付失败")

//go:generate mockgen -source=./service.go -package=paymentmocks -destination=../../mocks/payment.mock.go Service
type Service interface {
	// Pay 同步调用外部网关扣款, 填充支付序列号和扣款凭证, 不落库
	// 落库由结算事务通过 PaymentRecorder 完成
	Pay(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	ListPayments(ctx context.Context, uid int64) ([]domain.Payment, error)
	// DetachUser 置空用户引用, 支付记录保留
	DetachUser(ctx context.Context, uid int64) error
}

func NewService(gateway GatewayService, repo repository.PaymentRepository) Service {
	return &service{
		gateway:       gateway,
		repo:          repo,
		chargeTimeout: 10 * time.Second,
		l:             elog.DefaultLogger,
	}
}

type service struct {
	gateway GatewayService
	repo    repository.PaymentRepository
	// chargeTimeout 网关扣款是结算链路上唯一的慢调用, 必须有界
	chargeTimeout time.Duration
	l             *elog.Component
}

func (s *service) Pay(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.chargeTimeout)
	defer cancel()
	chargeSN, err := s.gateway.Charge(ctx, pmt.Uid, pmt.Amount)
	if err != nil {
		s.l.Error("调用支付网关扣款失败",
			elog.FieldErr(err),
			elog.Int64("uid", pmt.Uid),
			elog.Int64("amount", pmt.Amount),
		)
		return domain.Payment{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}
	pmt.SN = shortuuid.New()
	pmt.ChargeSN = chargeSN
	pmt.PaidAt = time.Now().UnixMilli()
	return pmt, nil
}

func (s *service) ListPayments(ctx context.Context, uid int64) ([]domain.Payment, error) {
	return s.repo.FindByUid(ctx, uid)
}

func (s *service) DetachUser(ctx context.Context, uid int64) error {
	return s.repo.DetachUser(ctx, uid)
}
