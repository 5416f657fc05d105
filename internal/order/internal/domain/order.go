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

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

// 主状态链单向递进: 购物车 -> 已下单 -> 配送中 -> 已签收
const (
	StatusCart       OrderStatus = 1
	StatusOrdered    OrderStatus = 2
	StatusDelivering OrderStatus = 3
	StatusReceived   OrderStatus = 4
)

type RefundStatus uint8

func (s RefundStatus) ToUint8() uint8 {
	return uint8(s)
}

// 退款子状态, 下单之后才有意义
// 拒绝退款回到未申请, 允许再次申请; 同意退款是终态
const (
	RefundStatusNone      RefundStatus = 1
	RefundStatusRequested RefundStatus = 2
	RefundStatusGranted   RefundStatus = 3
)

// Coupon 下单时优惠券的快照, 优惠券表的后续变更不影响历史订单
type Coupon struct {
	ID     int64
	Code   string
	Amount int64
}

type Order struct {
	ID int64
	// SN 面向用户的订单号, 结算时生成
	SN           string
	Uid          int64
	Status       OrderStatus
	RefundStatus RefundStatus

	BillingAddressID  int64
	ShippingAddressID int64
	PaymentID         int64
	Coupon            Coupon

	Lines []OrderLine

	// OrderedAt 结算完成时间, 毫秒时间戳
	OrderedAt int64
	Ctime     int64
	Utime     int64
}

// Subtotal 全部订单行的小计
func (o Order) Subtotal() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.Total()
	}
	return total
}

// Total 订单应付总额 = 小计 - 优惠券抵扣, 不允许为负
// 只依赖订单行快照和优惠券快照, 是纯函数
func (o Order) Total() int64 {
	total := o.Subtotal() - o.Coupon.Amount
	if total < 0 {
		return 0
	}
	return total
}

// OrderLine 一种商品在购物车或订单中的数量
// 单价在创建订单行时从商品快照而来, 商品调价不影响已有订单行
type OrderLine struct {
	ID      int64
	OrderID int64
	Uid     int64

	ItemID   int64
	ItemSlug string
	// ItemTitle 商品标题快照
	ItemTitle string
	// OriginalPrice 商品原价快照;单位为分, 999表示9.99元
	OriginalPrice int64
	// RealPrice 商品实付单价快照, 有折扣时为折扣价
	RealPrice int64
	Quantity  int64

	Ctime int64
	Utime int64
}

// Total 订单行小计, 始终使用实付单价
func (l OrderLine) Total() int64 {
	return l.RealPrice * l.Quantity
}

// AmountSaved 相比原价省下的金额
func (l OrderLine) AmountSaved() int64 {
	return (l.OriginalPrice - l.RealPrice) * l.Quantity
}
