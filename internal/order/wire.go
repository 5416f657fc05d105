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

//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/estore/internal/address"
	"github.com/ecodeclub/estore/internal/catalog"
	"github.com/ecodeclub/estore/internal/coupon"
	"github.com/ecodeclub/estore/internal/order/internal/repository"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/order/internal/service"
	"github.com/ecodeclub/estore/internal/payment"
	"github.com/ecodeclub/estore/internal/pkg/refcode"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component,
	catalogModule *catalog.Module,
	addressModule *address.Module,
	couponModule *coupon.Module,
	paymentModule *payment.Module,
) (*Module, error) {
	wire.Build(
		InitTablesOnce,
		refcode.NewGenerator,
		repository.NewRepository,
		service.NewService,
		wire.FieldsOf(new(*catalog.Module), "Svc"),
		wire.FieldsOf(new(*address.Module), "Svc"),
		wire.FieldsOf(new(*coupon.Module), "Svc"),
		wire.FieldsOf(new(*payment.Module), "Svc", "Recorder"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}
