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

package domain

type Category uint8

func (c Category) ToUint8() uint8 {
	return uint8(c)
}

const (
	CategoryShirt     Category = 1
	CategorySportWear Category = 2
	CategoryOutwear   Category = 3
)

type Label uint8

func (l Label) ToUint8() uint8 {
	return uint8(l)
}

const (
	LabelPrimary   Label = 1
	LabelSecondary Label = 2
	LabelDanger    Label = 3
)

type Item struct {
	ID    int64
	Title string
	// Price 商品原价;单位为分, 999表示9.99元
	Price int64
	// DiscountPrice 商品折扣价, 0 表示未设置折扣, 设置时必须小于原价
	DiscountPrice int64
	Category      Category
	Label         Label
	// Slug 唯一的URL安全标识
	Slug        string
	Description string
	Image       string
	Ctime       int64
	Utime       int64
}

// RealPrice 实际售价, 有折扣价时取折扣价
func (i Item) RealPrice() int64 {
	if i.DiscountPrice > 0 {
		return i.DiscountPrice
	}
	return i.Price
}
