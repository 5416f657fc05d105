//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/estore/internal/address"
	"github.com/ecodeclub/estore/internal/catalog"
	"github.com/ecodeclub/estore/internal/coupon"
	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/payment"
	"github.com/ecodeclub/estore/internal/refund"
	"github.com/ecodeclub/estore/internal/user"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis)

// InitApp 支付网关适配由调用方注入
func InitApp(gateway payment.GatewayService) (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		catalog.InitModule,
		coupon.InitModule,
		address.InitModule,
		payment.InitModule,
		order.InitModule,
		refund.InitModule,
		user.InitModule,
	)
	return new(App), nil
}
