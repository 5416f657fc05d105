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

var ErrRecordNotFound = gorm.ErrRecordNotFound

type ProfileDAO interface {
	// Create 幂等, 已存在的档案原样保留
	Create(ctx context.Context, p Profile) error
	FindByUid(ctx context.Context, uid int64) (Profile, error)
	UpdateOneClickPurchasing(ctx context.Context, uid int64, enabled bool) error
	UpdateGatewayCustomerID(ctx context.Context, uid int64, customerID string) error
	DeleteByUid(ctx context.Context, uid int64) error
}

func NewProfileGORMDAO(db *egorm.Component) ProfileDAO {
	return &profileGORMDAO{db: db}
}

type profileGORMDAO struct {
	db *egorm.Component
}

func (g *profileGORMDAO) Create(ctx context.Context, p Profile) error {
	now := time.Now().UnixMilli()
	p.Ctime, p.Utime = now, now
	err := g.db.WithContext(ctx).Create(&p).Error
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			const uniqueIndexErrNo uint16 = 1062
			if me.Number == uniqueIndexErrNo {
				// 重复初始化, 保留已有档案
				return nil
			}
		}
	}
	return err
}

func (g *profileGORMDAO) FindByUid(ctx context.Context, uid int64) (Profile, error) {
	var p Profile
	err := g.db.WithContext(ctx).Where("uid = ?", uid).First(&p).Error
	return p, err
}

func (g *profileGORMDAO) UpdateOneClickPurchasing(ctx context.Context, uid int64, enabled bool) error {
	return g.update(ctx, uid, map[string]any{"one_click_purchasing": enabled})
}

func (g *profileGORMDAO) UpdateGatewayCustomerID(ctx context.Context, uid int64, customerID string) error {
	return g.update(ctx, uid, map[string]any{"gateway_customer_id": customerID})
}

func (g *profileGORMDAO) update(ctx context.Context, uid int64, fields map[string]any) error {
	fields["utime"] = time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Profile{}).
		Where("uid = ?", uid).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (g *profileGORMDAO) DeleteByUid(ctx context.Context, uid int64) error {
	return g.db.WithContext(ctx).Where("uid = ?", uid).Delete(&Profile{}).Error
}

type Profile struct {
	Id                 int64  `gorm:"primaryKey,autoIncrement"`
	Uid                int64  `gorm:"not null;uniqueIndex:uniq_uid;comment:用户ID"`
	GatewayCustomerId  string `gorm:"type:varchar(255);not null;default:'';comment:支付网关客户标识"`
	OneClickPurchasing bool   `gorm:"not null;default:false;comment:是否开启一键购买"`
	Ctime              int64  `gorm:"comment:创建时间"`
	Utime              int64  `gorm:"comment:更新时间"`
}

func (Profile) TableName() string {
	return "user_profiles"
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Profile{})
}
