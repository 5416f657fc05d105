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
	"database/sql"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/payment/internal/domain"
	"github.com/ecodeclub/estore/internal/payment/internal/repository/dao"
	"github.com/ego-component/egorm"
)

// PaymentRecorder 供结算事务使用的窄接口
type PaymentRecorder interface {
	RecordTx(tx *egorm.Component, pmt domain.Payment) (domain.Payment, error)
}

type PaymentRepository interface {
	PaymentRecorder
	FindByUid(ctx context.Context, uid int64) ([]domain.Payment, error)
	DetachUser(ctx context.Context, uid int64) error
}

func NewPaymentRepository(d dao.PaymentDAO) PaymentRepository {
	return &paymentRepository{d: d}
}

type paymentRepository struct {
	d dao.PaymentDAO
}

func (r *paymentRepository) RecordTx(tx *egorm.Component, pmt domain.Payment) (domain.Payment, error) {
	id, err := r.d.CreateTx(tx, r.toEntity(pmt))
	if err != nil {
		return domain.Payment{}, err
	}
	pmt.ID = id
	return pmt, nil
}

func (r *paymentRepository) FindByUid(ctx context.Context, uid int64) ([]domain.Payment, error) {
	ps, err := r.d.FindByUid(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(ps, func(idx int, src dao.Payment) domain.Payment {
		return r.toDomain(src)
	}), nil
}

func (r *paymentRepository) DetachUser(ctx context.Context, uid int64) error {
	return r.d.ClearUid(ctx, uid)
}

func (r *paymentRepository) toEntity(pmt domain.Payment) dao.Payment {
	return dao.Payment{
		Id: pmt.ID,
		SN: pmt.SN,
		Uid: sql.NullInt64{
			Int64: pmt.Uid,
			Valid: pmt.Uid != 0,
		},
		Amount:   pmt.Amount,
		ChargeSN: pmt.ChargeSN,
		PaidAt:   pmt.PaidAt,
	}
}

func (r *paymentRepository) toDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:       p.Id,
		SN:       p.SN,
		Uid:      p.Uid.Int64,
		Amount:   p.Amount,
		ChargeSN: p.ChargeSN,
		PaidAt:   p.PaidAt,
		Ctime:    p.Ctime,
	}
}
