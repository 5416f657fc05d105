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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/estore/internal/coupon/internal/domain"
)

type CouponCache interface {
	GetCoupon(ctx context.Context, code string) (domain.Coupon, error)
	SetCoupon(ctx context.Context, c domain.Coupon) error
}

type CouponECache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewCouponECache(ec ecache.Cache, expiration time.Duration) CouponCache {
	return &CouponECache{
		ec: &ecache.NamespaceCache{
			Namespace: "coupon:",
			C:         ec,
		},
		expiration: expiration,
	}
}

func (q *CouponECache) GetCoupon(ctx context.Context, code string) (domain.Coupon, error) {
	var c domain.Coupon
	val, err := q.ec.Get(ctx, q.codeKey(code)).AsString()
	if err != nil {
		return domain.Coupon{}, err
	}
	err = json.Unmarshal([]byte(val), &c)
	return c, err
}

func (q *CouponECache) SetCoupon(ctx context.Context, c domain.Coupon) error {
	val, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return q.ec.Set(ctx, q.codeKey(c.Code), string(val), q.expiration)
}

// 注意 Namespace 设置
func (q *CouponECache) codeKey(code string) string {
	return fmt.Sprintf("code:%s", code)
}
