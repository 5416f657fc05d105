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
	"testing"

	"github.com/ecodeclub/estore/internal/coupon/internal/domain"
	"github.com/ecodeclub/estore/internal/coupon/internal/repository"
	"github.com/ecodeclub/estore/internal/coupon/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_FindByCode(t *testing.T) {
	t.Parallel()
	svc := NewService(&fakeCouponRepo{coupons: map[string]domain.Coupon{
		"SAVE5": {ID: 1, Code: "SAVE5", Amount: 500},
	}})

	t.Run("命中", func(t *testing.T) {
		t.Parallel()
		c, err := svc.FindByCode(context.Background(), "SAVE5")
		require.NoError(t, err)
		assert.Equal(t, int64(500), c.Amount)
	})

	t.Run("未命中", func(t *testing.T) {
		t.Parallel()
		_, err := svc.FindByCode(context.Background(), "NOPE")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestService_SaveCoupon(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		c         domain.Coupon
		errAssert assert.ErrorAssertionFunc
	}{
		{
			name:      "正常金额",
			c:         domain.Coupon{Code: "SAVE5", Amount: 500},
			errAssert: assert.NoError,
		},
		{
			name: "零金额",
			c:    domain.Coupon{Code: "ZERO", Amount: 0},
			errAssert: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrInvalidAmount)
			},
		},
		{
			name: "负金额",
			c:    domain.Coupon{Code: "NEG", Amount: -100},
			errAssert: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrInvalidAmount)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(&fakeCouponRepo{coupons: map[string]domain.Coupon{}})
			_, err := svc.SaveCoupon(context.Background(), tc.c)
			tc.errAssert(t, err)
		})
	}
}

type fakeCouponRepo struct {
	coupons map[string]domain.Coupon
}

var _ repository.CouponRepository = (*fakeCouponRepo)(nil)

func (f *fakeCouponRepo) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return domain.Coupon{}, dao.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCouponRepo) Create(ctx context.Context, c domain.Coupon) (int64, error) {
	if _, ok := f.coupons[c.Code]; ok {
		return 0, dao.ErrDuplicatedCode
	}
	c.ID = int64(len(f.coupons)) + 1
	f.coupons[c.Code] = c
	return c.ID, nil
}
