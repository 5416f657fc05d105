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
	// ErrDuplicatedCode 优惠码冲突
	ErrDuplicatedCode = errors.New("优惠码已经存在")
)

type CouponDAO interface {
	FindByCode(ctx context.Context, code string) (Coupon, error)
	Create(ctx context.Context, c Coupon) (int64, error)
}

type CouponGORMDAO struct {
	db *egorm.Component
}

func NewCouponGORMDAO(db *egorm.Component) CouponDAO {
	return &CouponGORMDAO{db: db}
}

func (d *CouponGORMDAO) FindByCode(ctx context.Context, code string) (Coupon, error) {
	var res Coupon
	err := d.db.WithContext(ctx).Where("code = ?", code).First(&res).Error
	return res, err
}

func (d *CouponGORMDAO) Create(ctx context.Context, c Coupon) (int64, error) {
	now := time.Now().UnixMilli()
	c.Ctime, c.Utime = now, now
	err := d.db.WithContext(ctx).Create(&c).Error
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return 0, ErrDuplicatedCode
		}
	}
	return c.Id, err
}

type Coupon struct {
	Id     int64  `gorm:"primaryKey;autoIncrement;comment:优惠券自增ID"`
	Code   string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_coupon_code;comment:优惠码"`
	Amount int64  `gorm:"not null;comment:抵扣金额;单位为分, 999表示9.99元"`
	Ctime  int64
	Utime  int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Coupon{})
}
