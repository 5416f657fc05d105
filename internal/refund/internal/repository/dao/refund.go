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
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrDuplicatedOrderSN 同一订单重复申请退款
	ErrDuplicatedOrderSN = errors.New("该订单已有退款申请")
	// ErrAlreadyDecided 申请单已经被处理过
	ErrAlreadyDecided = errors.New("退款申请已处理")
)

type RefundDAO interface {
	Create(ctx context.Context, r Refund) (int64, error)
	FindByOrderSN(ctx context.Context, orderSN string) (Refund, error)
	// Accept 同意申请, 只允许处理未同意的申请单
	Accept(ctx context.Context, orderSN string) error
	AcceptBatch(ctx context.Context, orderSNs []string) (int64, error)
	// DeleteByOrderSN 拒绝申请时删除未同意的申请单, 用户可以再次申请
	DeleteByOrderSN(ctx context.Context, orderSN string) error
	List(ctx context.Context, offset, limit int) ([]Refund, error)
	Count(ctx context.Context) (int64, error)
}

func NewRefundGORMDAO(db *egorm.Component) RefundDAO {
	return &refundGORMDAO{db: db}
}

type refundGORMDAO struct {
	db *egorm.Component
}

func (g *refundGORMDAO) Create(ctx context.Context, r Refund) (int64, error) {
	now := time.Now().UnixMilli()
	r.Ctime, r.Utime = now, now
	err := g.db.WithContext(ctx).Create(&r).Error
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			const uniqueIndexErrNo uint16 = 1062
			if me.Number == uniqueIndexErrNo {
				return 0, ErrDuplicatedOrderSN
			}
		}
		return 0, err
	}
	return r.Id, nil
}

func (g *refundGORMDAO) FindByOrderSN(ctx context.Context, orderSN string) (Refund, error) {
	var r Refund
	err := g.db.WithContext(ctx).Where("order_sn = ?", orderSN).First(&r).Error
	return r, err
}

func (g *refundGORMDAO) Accept(ctx context.Context, orderSN string) error {
	res := g.db.WithContext(ctx).Model(&Refund{}).
		Where("order_sn = ? AND accepted = ?", orderSN, false).
		Updates(map[string]any{
			"accepted": true,
			"utime":    time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 区分申请单不存在和已经处理过
		var r Refund
		err := g.db.WithContext(ctx).Where("order_sn = ?", orderSN).First(&r).Error
		if err != nil {
			return err
		}
		return ErrAlreadyDecided
	}
	return nil
}

func (g *refundGORMDAO) AcceptBatch(ctx context.Context, orderSNs []string) (int64, error) {
	res := g.db.WithContext(ctx).Model(&Refund{}).
		Where("order_sn IN ? AND accepted = ?", orderSNs, false).
		Updates(map[string]any{
			"accepted": true,
			"utime":    time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

func (g *refundGORMDAO) DeleteByOrderSN(ctx context.Context, orderSN string) error {
	// 只删除尚未同意的申请单, 已同意的是消费记录不能清掉
	return g.db.WithContext(ctx).
		Where("order_sn = ? AND accepted = ?", orderSN, false).Delete(&Refund{}).Error
}

func (g *refundGORMDAO) List(ctx context.Context, offset, limit int) ([]Refund, error) {
	var rs []Refund
	err := g.db.WithContext(ctx).
		Offset(offset).Limit(limit).Order("id DESC").Find(&rs).Error
	return rs, err
}

func (g *refundGORMDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Refund{}).Count(&count).Error
	return count, err
}

type Refund struct {
	Id      int64  `gorm:"primaryKey,autoIncrement"`
	OrderId int64  `gorm:"not null;comment:关联的订单ID"`
	OrderSN string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	Uid     int64  `gorm:"not null;index:idx_uid;comment:申请用户ID"`
	Reason  string `gorm:"type:text;not null;comment:退款原因"`
	Email   string `gorm:"type:varchar(255);not null;comment:结果通知邮箱"`
	// Accepted false表示尚未同意, 拒绝的申请单直接删除
	Accepted bool  `gorm:"not null;default:false;comment:是否已同意"`
	Ctime    int64 `gorm:"comment:创建时间"`
	Utime    int64 `gorm:"comment:更新时间"`
}

func (Refund) TableName() string {
	return "refunds"
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Refund{})
}
