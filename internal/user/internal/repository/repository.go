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

	"github.com/ecodeclub/estore/internal/user/internal/domain"
	"github.com/ecodeclub/estore/internal/user/internal/repository/dao"
)

type ProfileRepository interface {
	Create(ctx context.Context, p domain.Profile) error
	FindByUid(ctx context.Context, uid int64) (domain.Profile, error)
	UpdateOneClickPurchasing(ctx context.Context, uid int64, enabled bool) error
	UpdateGatewayCustomerID(ctx context.Context, uid int64, customerID string) error
	DeleteByUid(ctx context.Context, uid int64) error
}

func NewRepository(d dao.ProfileDAO) ProfileRepository {
	return &profileRepository{d: d}
}

type profileRepository struct {
	d dao.ProfileDAO
}

func (r *profileRepository) Create(ctx context.Context, p domain.Profile) error {
	return r.d.Create(ctx, dao.Profile{
		Uid:                p.Uid,
		GatewayCustomerId:  p.GatewayCustomerID,
		OneClickPurchasing: p.OneClickPurchasing,
	})
}

func (r *profileRepository) FindByUid(ctx context.Context, uid int64) (domain.Profile, error) {
	p, err := r.d.FindByUid(ctx, uid)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		ID:                 p.Id,
		Uid:                p.Uid,
		GatewayCustomerID:  p.GatewayCustomerId,
		OneClickPurchasing: p.OneClickPurchasing,
		Ctime:              p.Ctime,
		Utime:              p.Utime,
	}, nil
}

func (r *profileRepository) UpdateOneClickPurchasing(ctx context.Context, uid int64, enabled bool) error {
	return r.d.UpdateOneClickPurchasing(ctx, uid, enabled)
}

func (r *profileRepository) UpdateGatewayCustomerID(ctx context.Context, uid int64, customerID string) error {
	return r.d.UpdateGatewayCustomerID(ctx, uid, customerID)
}

func (r *profileRepository) DeleteByUid(ctx context.Context, uid int64) error {
	return r.d.DeleteByUid(ctx, uid)
}
