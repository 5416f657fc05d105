package ioc

import (
	"github.com/ecodeclub/estore/internal/address"
	"github.com/ecodeclub/estore/internal/catalog"
	"github.com/ecodeclub/estore/internal/coupon"
	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/payment"
	"github.com/ecodeclub/estore/internal/refund"
	"github.com/ecodeclub/estore/internal/user"
)

// App 聚合全部模块, 由上层接入层(HTTP/RPC)按需取用
type App struct {
	Catalog *catalog.Module
	Order   *order.Module
	Coupon  *coupon.Module
	Refund  *refund.Module
	Address *address.Module
	Payment *payment.Module
	User    *user.Module
}
