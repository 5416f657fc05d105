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

package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrLineNotFound 购物车中没有对应的订单行
	ErrLineNotFound = errors.New("购物车中没有该商品")
	// ErrInvalidTransition 当前状态不满足目标变更的前置条件
	ErrInvalidTransition = errors.New("订单状态变更非法")
	// ErrCartChanged 结算事务内复核金额时发现购物车被并发修改
	ErrCartChanged = errors.New("结算期间购物车发生变更")
)

type OrderDAO interface {
	// AddLine 向用户的购物车追加一件商品
	// 购物车不存在则创建, 已有同商品的订单行则数量加一
	AddLine(ctx context.Context, uid int64, line OrderLine) error
	// RemoveLine 整行移除
	RemoveLine(ctx context.Context, uid int64, itemSlug string) error
	// DecrementLine 数量减一, 减到零整行移除
	DecrementLine(ctx context.Context, uid int64, itemSlug string) error
	FindCartByUid(ctx context.Context, uid int64) (Order, []OrderLine, error)
	AttachCoupon(ctx context.Context, uid int64, couponID int64, couponCode string, couponAmount int64) error
	// FinalizeOrder 结算事务: 支付记录落库 + 购物车单向翻转为已下单, 同生共死
	// chargedAmount 是事务外向网关扣款的金额, 事务内锁定购物车重新核算,
	// 对不上说明结算期间购物车被并发修改
	FinalizeOrder(ctx context.Context, o Order, chargedAmount int64, record func(tx *egorm.Component) (int64, error)) error
	UpdateStatus(ctx context.Context, sn string, from, to uint8) error
	RequestRefund(ctx context.Context, uid int64, sn string) (Order, error)
	GrantRefund(ctx context.Context, sn string) error
	ResetRefund(ctx context.Context, sn string) error
	// RevertRefundGrant 补偿用, 把已同意的退款子状态退回已申请
	RevertRefundGrant(ctx context.Context, sn string) error
	ForceGrantRefund(ctx context.Context, sns []string) (int64, error)
	FindBySN(ctx context.Context, sn string, uid int64) (Order, []OrderLine, error)
	List(ctx context.Context, offset int, limit int, uid int64) ([]Order, error)
	Count(ctx context.Context, uid int64) (int64, error)
	FindLinesByOrderID(ctx context.Context, orderID int64) ([]OrderLine, error)
	DeleteByUid(ctx context.Context, uid int64) error
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

func (d *OrderGORMDAO) AddLine(ctx context.Context, uid int64, line OrderLine) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		cart, err := d.findOrCreateCartTx(tx, uid, now)
		if err != nil {
			return err
		}
		var existing OrderLine
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ? AND item_id = ?", cart.Id, line.ItemId).
			First(&existing).Error
		switch {
		case err == nil:
			// 同一商品只保留一个订单行, 重复加购只加数量
			return tx.Model(&OrderLine{}).Where("id = ?", existing.Id).
				Updates(map[string]any{
					"quantity": gorm.Expr("quantity + 1"),
					"utime":    now,
				}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			line.OrderId = cart.Id
			line.Uid = uid
			line.Ctime, line.Utime = now, now
			return tx.Create(&line).Error
		default:
			return err
		}
	})
}

// findOrCreateCartTx 同一用户最多只有一个未结算订单, 行级锁防止并发加购创建出两个购物车
func (d *OrderGORMDAO) findOrCreateCartTx(tx *egorm.Component, uid int64, now int64) (Order, error) {
	var cart Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uid = ? AND status = ?", uid, domain.StatusCart.ToUint8()).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = Order{
			Uid:          uid,
			Status:       domain.StatusCart.ToUint8(),
			RefundStatus: domain.RefundStatusNone.ToUint8(),
			Ctime:        now,
			Utime:        now,
		}
		err = tx.Create(&cart).Error
	}
	return cart, err
}

func (d *OrderGORMDAO) RemoveLine(ctx context.Context, uid int64, itemSlug string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		cart, err := d.findCartTx(tx, uid)
		if err != nil {
			return err
		}
		res := tx.Where("order_id = ? AND item_slug = ?", cart.Id, itemSlug).Delete(&OrderLine{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLineNotFound
		}
		return nil
	})
}

func (d *OrderGORMDAO) DecrementLine(ctx context.Context, uid int64, itemSlug string) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		cart, err := d.findCartTx(tx, uid)
		if err != nil {
			return err
		}
		var line OrderLine
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ? AND item_slug = ?", cart.Id, itemSlug).
			First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLineNotFound
		}
		if err != nil {
			return err
		}
		if line.Quantity <= 1 {
			return tx.Delete(&OrderLine{}, line.Id).Error
		}
		return tx.Model(&OrderLine{}).Where("id = ?", line.Id).
			Updates(map[string]any{
				"quantity": gorm.Expr("quantity - 1"),
				"utime":    now,
			}).Error
	})
}

// findCartTx 和 findOrCreateCartTx 不同, 购物车不存在时直接报订单行不存在
func (d *OrderGORMDAO) findCartTx(tx *egorm.Component, uid int64) (Order, error) {
	var cart Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uid = ? AND status = ?", uid, domain.StatusCart.ToUint8()).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrLineNotFound
	}
	return cart, err
}

func (d *OrderGORMDAO) FindCartByUid(ctx context.Context, uid int64) (Order, []OrderLine, error) {
	var cart Order
	err := d.db.WithContext(ctx).
		Where("uid = ? AND status = ?", uid, domain.StatusCart.ToUint8()).
		First(&cart).Error
	if err != nil {
		return Order{}, nil, err
	}
	lines, err := d.FindLinesByOrderID(ctx, cart.Id)
	return cart, lines, err
}

func (d *OrderGORMDAO) AttachCoupon(ctx context.Context, uid int64, couponID int64, couponCode string, couponAmount int64) error {
	now := time.Now().UnixMilli()
	// 覆盖之前附加的优惠券, 同一订单最多一张
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("uid = ? AND status = ?", uid, domain.StatusCart.ToUint8()).
		Updates(map[string]any{
			"coupon_id":     couponID,
			"coupon_code":   couponCode,
			"coupon_amount": couponAmount,
			"utime":         now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (d *OrderGORMDAO) FinalizeOrder(ctx context.Context, o Order, chargedAmount int64, record func(tx *egorm.Component) (int64, error)) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		// 锁定购物车行, 挡住并发的加购减购
		var cart Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", o.Id, domain.StatusCart.ToUint8()).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidTransition
		}
		if err != nil {
			return err
		}
		var lines []OrderLine
		err = tx.Where("order_id = ?", o.Id).Find(&lines).Error
		if err != nil {
			return err
		}
		var current int64
		for _, line := range lines {
			current += line.RealPrice * line.Quantity
		}
		current -= cart.CouponAmount
		if current < 0 {
			current = 0
		}
		if current != chargedAmount {
			return ErrCartChanged
		}
		paymentID, err := record(tx)
		if err != nil {
			return err
		}
		res := tx.Model(&Order{}).
			Where("id = ? AND status = ?", o.Id, domain.StatusCart.ToUint8()).
			Updates(map[string]any{
				"sn":                  o.SN,
				"status":              domain.StatusOrdered.ToUint8(),
				"billing_address_id":  o.BillingAddressId,
				"shipping_address_id": o.ShippingAddressId,
				"payment_id":          paymentID,
				"ordered_at":          o.OrderedAt,
				"utime":               now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
}

// UpdateStatus 带守卫的状态翻转, 不满足前置状态时一行都不会更新
func (d *OrderGORMDAO) UpdateStatus(ctx context.Context, sn string, from, to uint8) error {
	now := time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND status = ?", sn, from).
		Updates(map[string]any{
			"status": to,
			"utime":  now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (d *OrderGORMDAO) RequestRefund(ctx context.Context, uid int64, sn string) (Order, error) {
	now := time.Now().UnixMilli()
	var o Order
	err := d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		res := tx.Model(&Order{}).
			Where("sn = ? AND uid = ? AND status <> ? AND refund_status = ?",
				sn, uid, domain.StatusCart.ToUint8(), domain.RefundStatusNone.ToUint8()).
			Updates(map[string]any{
				"refund_status": domain.RefundStatusRequested.ToUint8(),
				"utime":         now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		return tx.Where("sn = ?", sn).First(&o).Error
	})
	return o, err
}

func (d *OrderGORMDAO) GrantRefund(ctx context.Context, sn string) error {
	return d.updateRefundStatus(ctx, sn, domain.RefundStatusRequested, domain.RefundStatusGranted)
}

func (d *OrderGORMDAO) ResetRefund(ctx context.Context, sn string) error {
	return d.updateRefundStatus(ctx, sn, domain.RefundStatusRequested, domain.RefundStatusNone)
}

func (d *OrderGORMDAO) RevertRefundGrant(ctx context.Context, sn string) error {
	return d.updateRefundStatus(ctx, sn, domain.RefundStatusGranted, domain.RefundStatusRequested)
}

func (d *OrderGORMDAO) updateRefundStatus(ctx context.Context, sn string, from, to domain.RefundStatus) error {
	now := time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND refund_status = ?", sn, from.ToUint8()).
		Updates(map[string]any{
			"refund_status": to.ToUint8(),
			"utime":         now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// ForceGrantRefund 管理端批量直接置为退款已同意, 绕过单笔审批但仍然只落在合法终态上
func (d *OrderGORMDAO) ForceGrantRefund(ctx context.Context, sns []string) (int64, error) {
	now := time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("sn IN ? AND status <> ?", sns, domain.StatusCart.ToUint8()).
		Updates(map[string]any{
			"refund_status": domain.RefundStatusGranted.ToUint8(),
			"utime":         now,
		})
	return res.RowsAffected, res.Error
}

func (d *OrderGORMDAO) FindBySN(ctx context.Context, sn string, uid int64) (Order, []OrderLine, error) {
	var o Order
	err := d.db.WithContext(ctx).Where("sn = ? AND uid = ?", sn, uid).First(&o).Error
	if err != nil {
		return Order{}, nil, err
	}
	lines, err := d.FindLinesByOrderID(ctx, o.Id)
	return o, lines, err
}

func (d *OrderGORMDAO) List(ctx context.Context, offset int, limit int, uid int64) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).
		Where("uid = ? AND status <> ?", uid, domain.StatusCart.ToUint8()).
		Order("ordered_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) Count(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Order{}).
		Where("uid = ? AND status <> ?", uid, domain.StatusCart.ToUint8()).
		Count(&count).Error
	return count, err
}

func (d *OrderGORMDAO) FindLinesByOrderID(ctx context.Context, orderID int64) ([]OrderLine, error) {
	var res []OrderLine
	err := d.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("ctime ASC").
		Find(&res).Error
	return res, err
}

// DeleteByUid 用户删除级联: 订单和订单行一并删除
func (d *OrderGORMDAO) DeleteByUid(ctx context.Context, uid int64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if err := tx.Where("uid = ?", uid).Delete(&OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Where("uid = ?", uid).Delete(&Order{}).Error
	})
}

type Order struct {
	Id  int64          `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN  sql.NullString `gorm:"type:varchar(255);uniqueIndex:uniq_order_sn;comment:面向用户的订单号,结算前为NULL"`
	Uid int64          `gorm:"not null;index:idx_order_uid,comment:用户ID"`
	// 同一用户最多一个 status=1 的购物车订单, 由事务内行级锁保证
	Status            uint8         `gorm:"type:tinyint unsigned;not null;default:1;comment:订单状态 1=购物车 2=已下单 3=配送中 4=已签收"`
	RefundStatus      uint8         `gorm:"type:tinyint unsigned;not null;default:1;comment:退款状态 1=未申请 2=已申请 3=已同意"`
	BillingAddressId  sql.NullInt64 `gorm:"comment:账单地址ID"`
	ShippingAddressId sql.NullInt64 `gorm:"comment:收货地址ID"`
	PaymentId         sql.NullInt64 `gorm:"uniqueIndex:uniq_order_payment_id;comment:支付自增ID"`
	CouponId          sql.NullInt64 `gorm:"comment:优惠券自增ID"`
	CouponCode        string        `gorm:"type:varchar(255);not null;default:'';comment:优惠码快照"`
	CouponAmount      int64         `gorm:"not null;default:0;comment:优惠券抵扣金额快照;单位为分"`
	OrderedAt         int64         `gorm:"comment:结算完成时间"`
	Ctime             int64
	Utime             int64
}

type OrderLine struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:订单行自增ID"`
	OrderId       int64  `gorm:"not null;index:idx_order_line_order_id,comment:订单自增ID"`
	Uid           int64  `gorm:"not null;index:idx_order_line_uid,comment:用户ID"`
	ItemId        int64  `gorm:"not null;index:idx_order_line_item_id,comment:商品自增ID"`
	ItemSlug      string `gorm:"type:varchar(255);not null;comment:商品Slug快照"`
	ItemTitle     string `gorm:"type:varchar(255);not null;comment:商品标题快照"`
	OriginalPrice int64  `gorm:"not null;comment:商品原价快照;单位为分, 999表示9.99元"`
	RealPrice     int64  `gorm:"not null;comment:商品实付单价快照;单位为分, 999表示9.99元"`
	Quantity      int64  `gorm:"not null;comment:购买数量"`
	Ctime         int64
	Utime         int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderLine{})
}
