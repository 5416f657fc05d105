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

	"github.com/ecodeclub/estore/internal/coupon/internal/domain"
	"github.com/ecodeclub/estore/internal/coupon/internal/repository"
	"github.com/ecodeclub/estore/internal/coupon/internal/repository/dao"
)

var (
	// ErrCouponNotFound 优惠码不存在
	ErrCouponNotFound = errors.New("优惠码不存在")
	// ErrInvalidAmount 抵扣金额非法
	ErrInvalidAmount = errors.New("抵扣金额必须大于零")
)

//go:generate mockgen -source=./service.go -package=couponmocks -destination=../../mocks/coupon.mock.go Service
type Service interface {
	// FindByCode 精确匹配优惠码
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	// SaveCoupon 管理端创建优惠券
	SaveCoupon(ctx context.Context, c domain.Coupon) (int64, error)
}

func NewService(repo repository.CouponRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.CouponRepository
}

func (s *service) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	c, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.Coupon{}, fmt.Errorf("%w: code=%s", ErrCouponNotFound, code)
	}
	return c, err
}

func (s *service) SaveCoupon(ctx context.Context, c domain.Coupon) (int64, error) {
	if c.Amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.repo.Create(ctx, c)
}
