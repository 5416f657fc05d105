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
	// ErrRecordNotFound 通用的数据没找到
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrDuplicatedSlug 商品Slug冲突
	ErrDuplicatedSlug = errors.New("商品Slug已经存在")
)

type ItemDAO interface {
	FindBySlug(ctx context.Context, slug string) (Item, error)
	List(ctx context.Context, offset int, limit int) ([]Item, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, item Item) (int64, error)
}

type ItemGORMDAO struct {
	db *egorm.Component
}

func NewItemGORMDAO(db *egorm.Component) ItemDAO {
	return &ItemGORMDAO{db: db}
}

func (d *ItemGORMDAO) FindBySlug(ctx context.Context, slug string) (Item, error) {
	var res Item
	err := d.db.WithContext(ctx).Where("slug = ?", slug).First(&res).Error
	return res, err
}

func (d *ItemGORMDAO) List(ctx context.Context, offset int, limit int) ([]Item, error) {
	var res []Item
	err := d.db.WithContext(ctx).
		Order("ctime DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *ItemGORMDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Item{}).Count(&count).Error
	return count, err
}

func (d *ItemGORMDAO) Save(ctx context.Context, item Item) (int64, error) {
	now := time.Now().UnixMilli()
	item.Ctime, item.Utime = now, now
	err := d.db.WithContext(ctx).Create(&item).Error
	if d.isMySQLUniqueIndexError(err) {
		return 0, ErrDuplicatedSlug
	}
	return item.Id, err
}

func (d *ItemGORMDAO) isMySQLUniqueIndexError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

type Item struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	Title         string `gorm:"type:varchar(255);not null;comment:商品标题"`
	Price         int64  `gorm:"not null;comment:商品原价;单位为分, 999表示9.99元"`
	DiscountPrice int64  `gorm:"not null;default:0;comment:商品折扣价;单位为分, 0表示未设置"`
	Category      uint8  `gorm:"type:tinyint unsigned;not null;comment:商品分类 1=衬衫 2=运动装 3=外套"`
	Label         uint8  `gorm:"type:tinyint unsigned;not null;comment:商品标签 1=primary 2=secondary 3=danger"`
	Slug          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_item_slug;comment:商品Slug"`
	Description   string `gorm:"not null;comment:商品描述"`
	Image         string `gorm:"type:varchar(512);not null;comment:商品图片路径"`
	Ctime         int64
	Utime         int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Item{})
}
