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
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type AddressDAO interface {
	Save(ctx context.Context, a Address) (int64, error)
	FindByID(ctx context.Context, id int64) (Address, error)
	FindDefault(ctx context.Context, uid int64, typ uint8) (Address, error)
	ListByUid(ctx context.Context, uid int64) ([]Address, error)
	DeleteByUid(ctx context.Context, uid int64) error
}

type AddressGORMDAO struct {
	db *egorm.Component
}

func NewAddressGORMDAO(db *egorm.Component) AddressDAO {
	return &AddressGORMDAO{db: db}
}

// Save 保存地址, 设置默认地址时在同一事务内清除同类型的其他默认标记
func (d *AddressGORMDAO) Save(ctx context.Context, a Address) (int64, error) {
	now := time.Now().UnixMilli()
	a.Ctime, a.Utime = now, now
	err := d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if a.Default {
			er := tx.Model(&Address{}).
				Where("uid = ? AND type = ? AND `default` = ?", a.Uid, a.Type, true).
				Update("default", false).Error
			if er != nil {
				return er
			}
		}
		return tx.Create(&a).Error
	})
	return a.Id, err
}

func (d *AddressGORMDAO) FindByID(ctx context.Context, id int64) (Address, error) {
	var res Address
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *AddressGORMDAO) FindDefault(ctx context.Context, uid int64, typ uint8) (Address, error) {
	var res Address
	err := d.db.WithContext(ctx).
		Where("uid = ? AND type = ? AND `default` = ?", uid, typ, true).
		First(&res).Error
	return res, err
}

func (d *AddressGORMDAO) ListByUid(ctx context.Context, uid int64) ([]Address, error) {
	var res []Address
	err := d.db.WithContext(ctx).Where("uid = ?", uid).Order("ctime DESC").Find(&res).Error
	return res, err
}

func (d *AddressGORMDAO) DeleteByUid(ctx context.Context, uid int64) error {
	return d.db.WithContext(ctx).Where("uid = ?", uid).Delete(&Address{}).Error
}

type Address struct {
	Id               int64  `gorm:"primaryKey;autoIncrement;comment:地址自增ID"`
	Uid              int64  `gorm:"not null;index:idx_address_uid;comment:用户ID"`
	StreetAddress    string `gorm:"type:varchar(255);not null;comment:街道地址"`
	ApartmentAddress string `gorm:"type:varchar(255);not null;comment:门牌地址"`
	Country          string `gorm:"type:varchar(2);not null;comment:国家码"`
	Zip              string `gorm:"type:varchar(255);not null;comment:邮编"`
	Type             uint8  `gorm:"type:tinyint unsigned;not null;comment:地址类型 1=账单 2=收货"`
	Default          bool   `gorm:"not null;default:false;comment:是否默认地址"`
	Ctime            int64
	Utime            int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Address{})
}
