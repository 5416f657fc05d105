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
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type PaymentDAO interface {
	// CreateTx 在调用方事务内插入支付记录, 保证和订单落库同生共死
	CreateTx(tx *egorm.Component, p Payment) (int64, error)
	FindByUid(ctx context.Context, uid int64) ([]Payment, error)
	ClearUid(ctx context.Context, uid int64) error
}

type PaymentGORMDAO struct {
	db *egorm.Component
}

func NewPaymentGORMDAO(db *egorm.Component) PaymentDAO {
	return &PaymentGORMDAO{db: db}
}

func (d *PaymentGORMDAO) CreateTx(tx *egorm.Component, p Payment) (int64, error) {
	now := time.Now().UnixMilli()
	p.Ctime = now
	err := tx.Create(&p).Error
	return p.Id, err
}

func (d *PaymentGORMDAO) FindByUid(ctx context.Context, uid int64) ([]Payment, error) {
	var res []Payment
	err := d.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("ctime DESC").
		Find(&res).Error
	return res, err
}

// ClearUid 用户被删除时置空支付记录上的用户引用, 记录本身保留
func (d *PaymentGORMDAO) ClearUid(ctx context.Context, uid int64) error {
	return d.db.WithContext(ctx).Model(&Payment{}).
		Where("uid = ?", uid).
		Update("uid", sql.NullInt64{}).Error
}

type Payment struct {
	Id       int64         `gorm:"primaryKey;autoIncrement;comment:支付自增ID"`
	SN       string        `gorm:"type:varchar(255);not null;uniqueIndex:uniq_payment_sn;comment:支付序列号"`
	Uid      sql.NullInt64 `gorm:"index:idx_payment_uid;comment:扣款用户ID,用户删除后为NULL"`
	Amount   int64         `gorm:"not null;comment:扣款金额;单位为分, 999表示9.99元"`
	ChargeSN string        `gorm:"type:varchar(255);not null;comment:网关扣款凭证号"`
	PaidAt   int64         `gorm:"not null;comment:扣款完成时间"`
	Ctime    int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Payment{})
}
