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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/refund/internal/domain"
	"github.com/ecodeclub/estore/internal/refund/internal/repository/dao"
)

type RefundRepository interface {
	Create(ctx context.Context, r domain.Refund) (int64, error)
	FindByOrderSN(ctx context.Context, orderSN string) (domain.Refund, error)
	Accept(ctx context.Context, orderSN string) error
	AcceptBatch(ctx context.Context, orderSNs []string) (int64, error)
	DeleteByOrderSN(ctx context.Context, orderSN string) error
	List(ctx context.Context, offset, limit int) ([]domain.Refund, error)
	Total(ctx context.Context) (int64, error)
}

func NewRepository(d dao.RefundDAO) RefundRepository {
	return &refundRepository{d: d}
}

type refundRepository struct {
	d dao.RefundDAO
}

func (r *refundRepository) Create(ctx context.Context, rf domain.Refund) (int64, error) {
	return r.d.Create(ctx, r.toEntity(rf))
}

func (r *refundRepository) FindByOrderSN(ctx context.Context, orderSN string) (domain.Refund, error) {
	rf, err := r.d.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return domain.Refund{}, err
	}
	return r.toDomain(rf), nil
}

func (r *refundRepository) Accept(ctx context.Context, orderSN string) error {
	return r.d.Accept(ctx, orderSN)
}

func (r *refundRepository) AcceptBatch(ctx context.Context, orderSNs []string) (int64, error) {
	return r.d.AcceptBatch(ctx, orderSNs)
}

func (r *refundRepository) DeleteByOrderSN(ctx context.Context, orderSN string) error {
	return r.d.DeleteByOrderSN(ctx, orderSN)
}

func (r *refundRepository) List(ctx context.Context, offset, limit int) ([]domain.Refund, error) {
	rs, err := r.d.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(rs, func(idx int, src dao.Refund) domain.Refund {
		return r.toDomain(src)
	}), nil
}

func (r *refundRepository) Total(ctx context.Context) (int64, error) {
	return r.d.Count(ctx)
}

func (r *refundRepository) toEntity(rf domain.Refund) dao.Refund {
	return dao.Refund{
		Id:       rf.ID,
		OrderId:  rf.OrderID,
		OrderSN:  rf.OrderSN,
		Uid:      rf.Uid,
		Reason:   rf.Reason,
		Email:    rf.Email,
		Accepted: rf.Accepted,
	}
}

func (r *refundRepository) toDomain(rf dao.Refund) domain.Refund {
	return domain.Refund{
		ID:       rf.Id,
		OrderID:  rf.OrderId,
		OrderSN:  rf.OrderSN,
		Uid:      rf.Uid,
		Reason:   rf.Reason,
		Email:    rf.Email,
		Accepted: rf.Accepted,
		Ctime:    rf.Ctime,
		Utime:    rf.Utime,
	}
}
