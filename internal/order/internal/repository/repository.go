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
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ego-component/egorm"
)

type OrderRepository interface {
	AddLine(ctx context.Context, uid int64, line domain.OrderLine) error
	RemoveLine(ctx context.Context, uid int64, itemSlug string) error
	DecrementLine(ctx context.Context, uid int64, itemSlug string) error
	FindCartByUid(ctx context.Context, uid int64) (domain.Order, error)
	AttachCoupon(ctx context.Context, uid int64, c domain.Coupon) error
	FinalizeOrder(ctx context.Context, o domain.Order, record func(tx *egorm.Component) (int64, error)) error
	UpdateStatus(ctx context.Context, sn string, from, to domain.OrderStatus) error
	RequestRefund(ctx context.Context, uid int64, sn string) (domain.Order, error)
	GrantRefund(ctx context.Context, sn string) error
	ResetRefund(ctx context.Context, sn string) error
	RevertRefundGrant(ctx context.Context, sn string) error
	ForceGrantRefund(ctx context.Context, sns []string) (int64, error)
	FindBySN(ctx context.Context, sn string, uid int64) (domain.Order, error)
	ListOrders(ctx context.Context, offset int, limit int, uid int64) ([]domain.Order, error)
	TotalOrders(ctx context.Context, uid int64) (int64, error)
	DeleteByUid(ctx context.Context, uid int64) error
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) AddLine(ctx context.Context, uid int64, line domain.OrderLine) error {
	return o.d.AddLine(ctx, uid, o.toLineEntity(line))
}

func (o *orderRepository) RemoveLine(ctx context.Context, uid int64, itemSlug string) error {
	return o.d.RemoveLine(ctx, uid, itemSlug)
}

func (o *orderRepository) DecrementLine(ctx context.Context, uid int64, itemSlug string) error {
	return o.d.DecrementLine(ctx, uid, itemSlug)
}

func (o *orderRepository) FindCartByUid(ctx context.Context, uid int64) (domain.Order, error) {
	cart, lines, err := o.d.FindCartByUid(ctx, uid)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toOrderDomain(cart, lines), nil
}

func (o *orderRepository) AttachCoupon(ctx context.Context, uid int64, c domain.Coupon) error {
	return o.d.AttachCoupon(ctx, uid, c.ID, c.Code, c.Amount)
}

func (o *orderRepository) FinalizeOrder(ctx context.Context, ord domain.Order, record func(tx *egorm.Component) (int64, error)) error {
	// Total() 是快照金额, 也就是事务外实际扣款的金额
	return o.d.FinalizeOrder(ctx, o.toOrderEntity(ord), ord.Total(), record)
}

func (o *orderRepository) UpdateStatus(ctx context.Context, sn string, from, to domain.OrderStatus) error {
	return o.d.UpdateStatus(ctx, sn, from.ToUint8(), to.ToUint8())
}

func (o *orderRepository) RequestRefund(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	ord, err := o.d.RequestRefund(ctx, uid, sn)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toOrderDomain(ord, nil), nil
}

func (o *orderRepository) GrantRefund(ctx context.Context, sn string) error {
	return o.d.GrantRefund(ctx, sn)
}

func (o *orderRepository) ResetRefund(ctx context.Context, sn string) error {
	return o.d.ResetRefund(ctx, sn)
}

func (o *orderRepository) RevertRefundGrant(ctx context.Context, sn string) error {
	return o.d.RevertRefundGrant(ctx, sn)
}

func (o *orderRepository) ForceGrantRefund(ctx context.Context, sns []string) (int64, error) {
	return o.d.ForceGrantRefund(ctx, sns)
}

func (o *orderRepository) FindBySN(ctx context.Context, sn string, uid int64) (domain.Order, error) {
	ord, lines, err := o.d.FindBySN(ctx, sn, uid)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toOrderDomain(ord, lines), nil
}

func (o *orderRepository) ListOrders(ctx context.Context, offset int, limit int, uid int64) ([]domain.Order, error) {
	os, err := o.d.List(ctx, offset, limit, uid)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Order, 0, len(os))
	for _, src := range os {
		lines, er := o.d.FindLinesByOrderID(ctx, src.Id)
		if er != nil {
			return nil, er
		}
		res = append(res, o.toOrderDomain(src, lines))
	}
	return res, nil
}

func (o *orderRepository) TotalOrders(ctx context.Context, uid int64) (int64, error) {
	return o.d.Count(ctx, uid)
}

func (o *orderRepository) DeleteByUid(ctx context.Context, uid int64) error {
	return o.d.DeleteByUid(ctx, uid)
}

func (o *orderRepository) toOrderEntity(ord domain.Order) dao.Order {
	return dao.Order{
		Id: ord.ID,
		SN: sql.NullString{
			String: ord.SN,
			Valid:  ord.SN != "",
		},
		Uid:          ord.Uid,
		Status:       ord.Status.ToUint8(),
		RefundStatus: ord.RefundStatus.ToUint8(),
		BillingAddressId: sql.NullInt64{
			Int64: ord.BillingAddressID,
			Valid: ord.BillingAddressID != 0,
		},
		ShippingAddressId: sql.NullInt64{
			Int64: ord.ShippingAddressID,
			Valid: ord.ShippingAddressID != 0,
		},
		PaymentId: sql.NullInt64{
			Int64: ord.PaymentID,
			Valid: ord.PaymentID != 0,
		},
		CouponId: sql.NullInt64{
			Int64: ord.Coupon.ID,
			Valid: ord.Coupon.ID != 0,
		},
		CouponCode:   ord.Coupon.Code,
		CouponAmount: ord.Coupon.Amount,
		OrderedAt:    ord.OrderedAt,
	}
}

func (o *orderRepository) toLineEntity(line domain.OrderLine) dao.OrderLine {
	return dao.OrderLine{
		Id:            line.ID,
		OrderId:       line.OrderID,
		Uid:           line.Uid,
		ItemId:        line.ItemID,
		ItemSlug:      line.ItemSlug,
		ItemTitle:     line.ItemTitle,
		OriginalPrice: line.OriginalPrice,
		RealPrice:     line.RealPrice,
		Quantity:      line.Quantity,
	}
}

func (o *orderRepository) toOrderDomain(ord dao.Order, lines []dao.OrderLine) domain.Order {
	return domain.Order{
		ID:                ord.Id,
		SN:                ord.SN.String,
		Uid:               ord.Uid,
		Status:            domain.OrderStatus(ord.Status),
		RefundStatus:      domain.RefundStatus(ord.RefundStatus),
		BillingAddressID:  ord.BillingAddressId.Int64,
		ShippingAddressID: ord.ShippingAddressId.Int64,
		PaymentID:         ord.PaymentId.Int64,
		Coupon: domain.Coupon{
			ID:     ord.CouponId.Int64,
			Code:   ord.CouponCode,
			Amount: ord.CouponAmount,
		},
		Lines: slice.Map(lines, func(idx int, src dao.OrderLine) domain.OrderLine {
			return domain.OrderLine{
				ID:            src.Id,
				OrderID:       src.OrderId,
				Uid:           src.Uid,
				ItemID:        src.ItemId,
				ItemSlug:      src.ItemSlug,
				ItemTitle:     src.ItemTitle,
				OriginalPrice: src.OriginalPrice,
				RealPrice:     src.RealPrice,
				Quantity:      src.Quantity,
				Ctime:         src.Ctime,
				Utime:         src.Utime,
			}
		}),
		OrderedAt: ord.OrderedAt,
		Ctime:     ord.Ctime,
		Utime:     ord.Utime,
	}
}
