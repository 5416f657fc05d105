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
	"fmt"

	"github.com/ecodeclub/estore/internal/address"
	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/payment"
	"github.com/ecodeclub/estore/internal/user/internal/domain"
	"github.com/ecodeclub/estore/internal/user/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

var ErrProfileNotFound = fmt.Errorf("用户档案不存在")

//go:generate mockgen -source=./service.go -package=usermocks -destination=../../mocks/user.mock.go Service
type Service interface {
	// InitProfile 幂等, 账号体系创建用户之后调用
	InitProfile(ctx context.Context, uid int64) error
	FindProfile(ctx context.Context, uid int64) (domain.Profile, error)
	UpdateOneClickPurchasing(ctx context.Context, uid int64, enabled bool) error
	// SaveGatewayCustomerID 首次扣款成功后回填网关侧客户标识
	SaveGatewayCustomerID(ctx context.Context, uid int64, customerID string) error
	// RemoveUser 删除用户在商城侧的全部数据,
	// 订单和地址直接删除, 支付流水脱离用户保留
	RemoveUser(ctx context.Context, uid int64) error
}

func NewService(repo repository.ProfileRepository,
	orderSvc order.Service,
	addressSvc address.Service,
	paymentSvc payment.Service,
) Service {
	return &service{
		repo:       repo,
		orderSvc:   orderSvc,
		addressSvc: addressSvc,
		paymentSvc: paymentSvc,
		l:          elog.DefaultLogger,
	}
}

type service struct {
	repo       repository.ProfileRepository
	orderSvc   order.Service
	addressSvc address.Service
	paymentSvc payment.Service
	l          *elog.Component
}

func (s *service) InitProfile(ctx context.Context, uid int64) error {
	return s.repo.Create(ctx, domain.Profile{Uid: uid})
}

func (s *service) FindProfile(ctx context.Context, uid int64) (domain.Profile, error) {
	p, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: uid %d", ErrProfileNotFound, uid)
	}
	return p, nil
}

func (s *service) UpdateOneClickPurchasing(ctx context.Context, uid int64, enabled bool) error {
	return s.repo.UpdateOneClickPurchasing(ctx, uid, enabled)
}

func (s *service) SaveGatewayCustomerID(ctx context.Context, uid int64, customerID string) error {
	return s.repo.UpdateGatewayCustomerID(ctx, uid, customerID)
}

func (s *service) RemoveUser(ctx context.Context, uid int64) error {
	if err := s.orderSvc.RemoveByUid(ctx, uid); err != nil {
		return fmt.Errorf("删除用户订单失败: %w", err)
	}
	if err := s.addressSvc.RemoveByUid(ctx, uid); err != nil {
		return fmt.Errorf("删除用户地址失败: %w", err)
	}
	if err := s.paymentSvc.DetachUser(ctx, uid); err != nil {
		return fmt.Errorf("解绑用户支付流水失败: %w", err)
	}
	if err := s.repo.DeleteByUid(ctx, uid); err != nil {
		s.l.Error("删除用户档案失败", elog.FieldErr(err), elog.Int64("uid", uid))
		return err
	}
	return nil
}
