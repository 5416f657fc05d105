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

package repository

import (
	"context"

	"github.com/ecodeclub/estore/internal/coupon/internal/domain"
	"github.com/ecodeclub/estore/internal/coupon/internal/repository/cache"
	"github.com/ecodeclub/estore/internal/coupon/internal/repository/dao"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	Create(ctx context.Context, c domain.Coupon) (int64, error)
}

// CachedCouponRepository 优惠券读多写少, 走缓存
type CachedCouponRepository struct {
	d dao.CouponDAO
	c cache.CouponCache
}

func NewCachedCouponRepository(d dao.CouponDAO, c cache.CouponCache) CouponRepository {
	return &CachedCouponRepository{d: d, c: c}
}

func (r *CachedCouponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	c, err := r.c.GetCoupon(ctx, code)
	if err == nil {
		return c, nil
	}
	entity, err := r.d.FindByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	res := r.toDomain(entity)
	// 回填失败不影响主流程
	_ = r.c.SetCoupon(ctx, res)
	return res, nil
}

func (r *CachedCouponRepository) Create(ctx context.Context, c domain.Coupon) (int64, error) {
	return r.d.Create(ctx, dao.Coupon{
		Code:   c.Code,
		Amount: c.Amount,
	})
}

func (r *CachedCouponRepository) toDomain(c dao.Coupon) domain.Coupon {
	return domain.Coupon{
		ID:     c.Id,
		Code:   c.Code,
		Amount: c.Amount,
		Ctime:  c.Ctime,
		Utime:  c.Utime,
	}
}
