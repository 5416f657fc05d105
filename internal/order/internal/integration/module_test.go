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

//go:build e2e

package integration

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ecodeclub/estore/internal/address"
	"github.com/ecodeclub/estore/internal/catalog"
	"github.com/ecodeclub/estore/internal/coupon"
	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/payment"
	paymentmocks "github.com/ecodeclub/estore/internal/payment/mocks"
	testioc "github.com/ecodeclub/estore/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testUid = int64(275892)

func TestOrderModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

type ModuleTestSuite struct {
	suite.Suite
	db         *egorm.Component
	ctrl       *gomock.Controller
	svc        order.Service
	catalogSvc catalog.Service
	addressSvc address.Service
	couponSvc  coupon.Service

	billingID  int64
	shippingID int64
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.ctrl = gomock.NewController(s.T())

	gateway := paymentmocks.NewMockGatewayService(s.ctrl)
	gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("charge-e2e", nil).AnyTimes()

	catalogModule, err := catalog.InitModule(s.db)
	s.Require().NoError(err)
	s.catalogSvc = catalogModule.Svc

	addressModule, err := address.InitModule(s.db)
	s.Require().NoError(err)
	s.addressSvc = addressModule.Svc

	couponModule, err := coupon.InitModule(s.db, testioc.InitCache())
	s.Require().NoError(err)
	s.couponSvc = couponModule.Svc

	paymentModule, err := payment.InitModule(s.db, gateway)
	s.Require().NoError(err)

	orderModule, err := order.InitModule(s.db, catalogModule, addressModule, couponModule, paymentModule)
	s.Require().NoError(err)
	s.svc = orderModule.Svc

	s.seed()
}

func (s *ModuleTestSuite) seed() {
	ctx := context.Background()
	_, err := s.catalogSvc.SaveItem(ctx, catalog.Item{
		Title:         "经典衬衫",
		Slug:          "shirt-classic",
		Price:         2000,
		DiscountPrice: 1500,
		Category:      catalog.CategoryShirt,
		Label:         catalog.LabelPrimary,
	})
	s.Require().NoError(err)
	_, err = s.catalogSvc.SaveItem(ctx, catalog.Item{
		Title:    "派克大衣",
		Slug:     "outwear-parka",
		Price:    1000,
		Category: catalog.CategoryOutwear,
		Label:    catalog.LabelSecondary,
	})
	s.Require().NoError(err)

	s.billingID, err = s.addressSvc.SaveAddress(ctx, address.Address{
		Uid:           testUid,
		StreetAddress: "长安街1号",
		Country:       "CN",
		Zip:           "100000",
		Type:          address.TypeBilling,
	})
	s.Require().NoError(err)
	s.shippingID, err = s.addressSvc.SaveAddress(ctx, address.Address{
		Uid:           testUid,
		StreetAddress: "人民路2号",
		Country:       "CN",
		Zip:           "200000",
		Type:          address.TypeShipping,
	})
	s.Require().NoError(err)

	_, err = s.couponSvc.SaveCoupon(ctx, coupon.Coupon{Code: "SAVE5", Amount: 500})
	s.Require().NoError(err)
}

func (s *ModuleTestSuite) TearDownSuite() {
	s.NoError(s.db.Exec("TRUNCATE TABLE `orders`").Error)
	s.NoError(s.db.Exec("TRUNCATE TABLE `order_lines`").Error)
	s.NoError(s.db.Exec("TRUNCATE TABLE `payments`").Error)
	s.NoError(s.db.Exec("TRUNCATE TABLE `items`").Error)
	s.NoError(s.db.Exec("TRUNCATE TABLE `coupons`").Error)
	s.NoError(s.db.Exec("TRUNCATE TABLE `addresses`").Error)
	s.ctrl.Finish()
}

// TestFinalizeRejectsStaleAmount 网关扣款发生在结算事务之外,
// 事务内锁定购物车重新核算, 金额和实际扣款对不上时整个事务回滚
func (s *ModuleTestSuite) TestFinalizeRejectsStaleAmount() {
	t := s.T()
	ctx := context.Background()
	uid := int64(275893)
	d := dao.NewOrderGORMDAO(s.db)

	require.NoError(t, s.svc.AddToCart(ctx, uid, "shirt-classic"))
	cart, lines, err := d.FindCartByUid(ctx, uid)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	staleAmount := lines[0].RealPrice * lines[0].Quantity

	// 拿到金额之后购物车又被改了
	require.NoError(t, s.svc.AddToCart(ctx, uid, "shirt-classic"))

	var recorded int
	record := func(tx *egorm.Component) (int64, error) {
		recorded++
		return 424242, nil
	}
	finalized := dao.Order{
		Id:                cart.Id,
		SN:                sql.NullString{String: "20260101000099999999", Valid: true},
		BillingAddressId:  sql.NullInt64{Int64: s.billingID, Valid: true},
		ShippingAddressId: sql.NullInt64{Int64: s.shippingID, Valid: true},
	}
	err = d.FinalizeOrder(ctx, finalized, staleAmount, record)
	require.ErrorIs(t, err, dao.ErrCartChanged)
	// 支付流水没有落库, 购物车原样保留
	require.Zero(t, recorded)
	got, _, err := d.FindCartByUid(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, cart.Id, got.Id)

	// 按当前金额重新核算后结算成功
	_, lines, err = d.FindCartByUid(ctx, uid)
	require.NoError(t, err)
	var current int64
	for _, line := range lines {
		current += line.RealPrice * line.Quantity
	}
	require.NoError(t, d.FinalizeOrder(ctx, finalized, current, record))
	require.Equal(t, 1, recorded)
	_, _, err = d.FindCartByUid(ctx, uid)
	require.ErrorIs(t, err, dao.ErrRecordNotFound)
}

func (s *ModuleTestSuite) TestFullPurchaseFlow() {
	t := s.T()
	ctx := context.Background()

	require.NoError(t, s.svc.AddToCart(ctx, testUid, "shirt-classic"))
	require.NoError(t, s.svc.AddToCart(ctx, testUid, "shirt-classic"))
	require.NoError(t, s.svc.AddToCart(ctx, testUid, "outwear-parka"))

	cart, err := s.svc.GetCart(ctx, testUid)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	require.Equal(t, int64(4000), cart.Total())

	require.NoError(t, s.svc.ApplyCoupon(ctx, testUid, "SAVE5"))
	cart, err = s.svc.GetCart(ctx, testUid)
	require.NoError(t, err)
	require.Equal(t, int64(3500), cart.Total())

	placed, err := s.svc.Checkout(ctx, testUid, s.billingID, s.shippingID)
	require.NoError(t, err)
	require.Equal(t, order.StatusOrdered, placed.Status)
	require.Len(t, placed.SN, 20)

	// 结算后购物车重新为空, 再加购开启新的一单
	cart, err = s.svc.GetCart(ctx, testUid)
	require.NoError(t, err)
	require.Empty(t, cart.Lines)

	require.NoError(t, s.svc.MarkBeingDelivered(ctx, placed.SN))
	require.NoError(t, s.svc.MarkReceived(ctx, placed.SN))

	got, err := s.svc.FindOrderBySN(ctx, placed.SN, testUid)
	require.NoError(t, err)
	require.Equal(t, order.StatusReceived, got.Status)
	require.Equal(t, int64(3500), got.Total())

	// 跳步和回退都被守卫挡住
	require.ErrorIs(t, s.svc.MarkBeingDelivered(ctx, placed.SN), order.ErrInvalidTransition)

	// 退款子状态流转
	_, err = s.svc.MarkRefundRequested(ctx, testUid, placed.SN)
	require.NoError(t, err)
	require.NoError(t, s.svc.MarkRefundGranted(ctx, placed.SN))
	got, err = s.svc.FindOrderBySN(ctx, placed.SN, testUid)
	require.NoError(t, err)
	require.Equal(t, order.RefundStatusGranted, got.RefundStatus)
}
