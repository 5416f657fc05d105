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

	"github.com/ecodeclub/estore/internal/address"
	"github.com/ecodeclub/estore/internal/catalog"
	"github.com/ecodeclub/estore/internal/coupon"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/repository"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/payment"
	"github.com/ecodeclub/estore/internal/pkg/refcode"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotInCart 购物车中没有该商品, 可恢复, 由上层提示用户
	ErrNotInCart = dao.ErrLineNotFound
	// ErrInvalidTransition 状态机不允许的变更
	ErrInvalidTransition = dao.ErrInvalidTransition
	// ErrCartChanged 结算事务内核算金额时发现购物车被并发修改, 上层可重试
	ErrCartChanged = dao.ErrCartChanged
	// ErrEmptyCart 空购物车不能结算
	ErrEmptyCart = errors.New("购物车为空")
	// ErrAddressRequired 结算必须同时提供账单地址和收货地址
	ErrAddressRequired = errors.New("缺少地址信息")
)

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go Service
type Service interface {
	// AddToCart 加入购物车, 购物车就是用户唯一的未结算订单
	AddToCart(ctx context.Context, uid int64, itemSlug string) error
	// RemoveFromCart 整行移除
	RemoveFromCart(ctx context.Context, uid int64, itemSlug string) error
	// RemoveSingleItem 数量减一
	RemoveSingleItem(ctx context.Context, uid int64, itemSlug string) error
	GetCart(ctx context.Context, uid int64) (domain.Order, error)
	// ApplyCoupon 向当前购物车附加优惠券, 覆盖之前附加的
	ApplyCoupon(ctx context.Context, uid int64, code string) error
	// Checkout 结算: 校验地址 -> 网关扣款 -> 单一事务内落支付记录并翻转订单
	Checkout(ctx context.Context, uid int64, billingAddressID, shippingAddressID int64) (domain.Order, error)
	MarkBeingDelivered(ctx context.Context, sn string) error
	MarkReceived(ctx context.Context, sn string) error
	ListOrders(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error)
	FindOrderBySN(ctx context.Context, sn string, uid int64) (domain.Order, error)

	// 以下供退款模块驱动退款子状态
	MarkRefundRequested(ctx context.Context, uid int64, sn string) (domain.Order, error)
	MarkRefundGranted(ctx context.Context, sn string) error
	ResetRefundRequested(ctx context.Context, sn string) error
	// RevertRefundGranted 退款模块补偿用, 已同意退回已申请
	RevertRefundGranted(ctx context.Context, sn string) error
	// ForceGrantRefund 管理端批量强制同意退款, 返回实际生效的订单数
	ForceGrantRefund(ctx context.Context, sns []string) (int64, error)

	// RemoveByUid 删除用户的全部订单, 供用户删除级联使用
	RemoveByUid(ctx context.Context, uid int64) error
}

func NewService(repo repository.OrderRepository,
	catalogSvc catalog.Service,
	addressSvc address.Service,
	couponSvc coupon.Service,
	paymentSvc payment.Service,
	recorder payment.Recorder,
	refCodeGenerator *refcode.Generator,
) Service {
	return &service{
		repo:             repo,
		catalogSvc:       catalogSvc,
		addressSvc:       addressSvc,
		couponSvc:        couponSvc,
		paymentSvc:       paymentSvc,
		recorder:         recorder,
		refCodeGenerator: refCodeGenerator,
		l:                elog.DefaultLogger,
	}
}

type service struct {
	repo             repository.OrderRepository
	catalogSvc       catalog.Service
	addressSvc       address.Service
	couponSvc        coupon.Service
	paymentSvc       payment.Service
	recorder         payment.Recorder
	refCodeGenerator *refcode.Generator
	l                *elog.Component
}

func (s *service) AddToCart(ctx context.Context, uid int64, itemSlug string) error {
	item, err := s.catalogSvc.FindBySlug(ctx, itemSlug)
	if err != nil {
		return err
	}
	// 单价在此刻快照, 商品后续调价不影响已经入车的订单行
	return s.repo.AddLine(ctx, uid, domain.OrderLine{
		Uid:           uid,
		ItemID:        item.ID,
		ItemSlug:      item.Slug,
		ItemTitle:     item.Title,
		OriginalPrice: item.Price,
		RealPrice:     item.RealPrice(),
		Quantity:      1,
	})
}

func (s *service) RemoveFromCart(ctx context.Context, uid int64, itemSlug string) error {
	return s.repo.RemoveLine(ctx, uid, itemSlug)
}

func (s *service) RemoveSingleItem(ctx context.Context, uid int64, itemSlug string) error {
	return s.repo.DecrementLine(ctx, uid, itemSlug)
}

func (s *service) GetCart(ctx context.Context, uid int64) (domain.Order, error) {
	cart, err := s.repo.FindCartByUid(ctx, uid)
	if errors.Is(err, dao.ErrRecordNotFound) {
		// 没有购物车等价于空购物车
		return domain.Order{Uid: uid, Status: domain.StatusCart, RefundStatus: domain.RefundStatusNone}, nil
	}
	return cart, err
}

func (s *service) ApplyCoupon(ctx context.Context, uid int64, code string) error {
	c, err := s.couponSvc.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	return s.repo.AttachCoupon(ctx, uid, domain.Coupon{
		ID:     c.ID,
		Code:   c.Code,
		Amount: c.Amount,
	})
}

func (s *service) Checkout(ctx context.Context, uid int64, billingAddressID, shippingAddressID int64) (domain.Order, error) {
	cart, err := s.repo.FindCartByUid(ctx, uid)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.Order{}, ErrEmptyCart
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找购物车失败: %w", err)
	}
	if len(cart.Lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	if billingAddressID == 0 || shippingAddressID == 0 {
		return domain.Order{}, ErrAddressRequired
	}
	if _, err = s.addressSvc.FindAddress(ctx, uid, billingAddressID); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %w", ErrAddressRequired, err)
	}
	if _, err = s.addressSvc.FindAddress(ctx, uid, shippingAddressID); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %w", ErrAddressRequired, err)
	}

	// 网关扣款是链路上唯一的外部慢调用, 放在本地事务之前
	// 失败或超时直接返回, 订单仍然停留在购物车状态
	pmt, err := s.paymentSvc.Pay(ctx, payment.Payment{Uid: uid, Amount: cart.Total()})
	if err != nil {
		return domain.Order{}, err
	}

	refCode, err := s.refCodeGenerator.Generate(uid)
	if err != nil {
		// 扣款已经发生但订单还停留在购物车, 需要人工或对账介入
		s.l.Error("生成订单号失败",
			elog.FieldErr(err),
			elog.Int64("uid", uid),
			elog.String("charge_sn", pmt.ChargeSN),
		)
		return domain.Order{}, fmt.Errorf("生成订单号失败: %w", err)
	}
	cart.SN = refCode
	cart.BillingAddressID = billingAddressID
	cart.ShippingAddressID = shippingAddressID
	cart.OrderedAt = time.Now().UnixMilli()

	var paymentID int64
	err = s.repo.FinalizeOrder(ctx, cart, func(tx *egorm.Component) (int64, error) {
		created, er := s.recorder.RecordTx(tx, pmt)
		if er != nil {
			return 0, er
		}
		paymentID = created.ID
		return created.ID, nil
	})
	if err != nil {
		// 扣款已经发生但订单没有翻转成功, 需要人工或对账介入
		s.l.Error("结算落库失败",
			elog.FieldErr(err),
			elog.Int64("uid", uid),
			elog.String("charge_sn", pmt.ChargeSN),
		)
		return domain.Order{}, fmt.Errorf("结算失败: %w", err)
	}
	cart.Status = domain.StatusOrdered
	cart.PaymentID = paymentID
	return cart, nil
}

func (s *service) MarkBeingDelivered(ctx context.Context, sn string) error {
	return s.repo.UpdateStatus(ctx, sn, domain.StatusOrdered, domain.StatusDelivering)
}

func (s *service) MarkReceived(ctx context.Context, sn string) error {
	return s.repo.UpdateStatus(ctx, sn, domain.StatusDelivering, domain.StatusReceived)
}

func (s *service) ListOrders(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListOrders(ctx, offset, limit, uid)
		return err
	})

	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx, uid)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) FindOrderBySN(ctx context.Context, sn string, uid int64) (domain.Order, error) {
	return s.repo.FindBySN(ctx, sn, uid)
}

func (s *service) MarkRefundRequested(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	return s.repo.RequestRefund(ctx, uid, sn)
}

func (s *service) MarkRefundGranted(ctx context.Context, sn string) error {
	return s.repo.GrantRefund(ctx, sn)
}

func (s *service) ResetRefundRequested(ctx context.Context, sn string) error {
	return s.repo.ResetRefund(ctx, sn)
}

func (s *service) RevertRefundGranted(ctx context.Context, sn string) error {
	return s.repo.RevertRefundGrant(ctx, sn)
}

func (s *service) ForceGrantRefund(ctx context.Context, sns []string) (int64, error) {
	return s.repo.ForceGrantRefund(ctx, sns)
}

func (s *service) RemoveByUid(ctx context.Context, uid int64) error {
	return s.repo.DeleteByUid(ctx, uid)
}
