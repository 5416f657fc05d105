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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/address/internal/domain"
	"github.com/ecodeclub/estore/internal/address/internal/repository/dao"
)

type AddressRepository interface {
	Save(ctx context.Context, a domain.Address) (int64, error)
	FindByID(ctx context.Context, id int64) (domain.Address, error)
	FindDefault(ctx context.Context, uid int64, typ domain.AddressType) (domain.Address, error)
	ListByUid(ctx context.Context, uid int64) ([]domain.Address, error)
	DeleteByUid(ctx context.Context, uid int64) error
}

func NewAddressRepository(d dao.AddressDAO) AddressRepository {
	return &addressRepository{d: d}
}

type addressRepository struct {
	d dao.AddressDAO
}

func (r *addressRepository) Save(ctx context.Context, a domain.Address) (int64, error) {
	return r.d.Save(ctx, r.toEntity(a))
}

func (r *addressRepository) FindByID(ctx context.Context, id int64) (domain.Address, error) {
	a, err := r.d.FindByID(ctx, id)
	if err != nil {
		return domain.Address{}, err
	}
	return r.toDomain(a), nil
}

func (r *addressRepository) FindDefault(ctx context.Context, uid int64, typ domain.AddressType) (domain.Address, error) {
	a, err := r.d.FindDefault(ctx, uid, typ.ToUint8())
	if err != nil {
		return domain.Address{}, err
	}
	return r.toDomain(a), nil
}

func (r *addressRepository) ListByUid(ctx context.Context, uid int64) ([]domain.Address, error) {
	as, err := r.d.ListByUid(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(as, func(idx int, src dao.Address) domain.Address {
		return r.toDomain(src)
	}), nil
}

func (r *addressRepository) DeleteByUid(ctx context.Context, uid int64) error {
	return r.d.DeleteByUid(ctx, uid)
}

func (r *addressRepository) toDomain(a dao.Address) domain.Address {
	return domain.Address{
		ID:               a.Id,
		Uid:              a.Uid,
		StreetAddress:    a.StreetAddress,
		ApartmentAddress: a.ApartmentAddress,
		Country:          a.Country,
		Zip:              a.Zip,
		Type:             domain.AddressType(a.Type),
		Default:          a.Default,
		Ctime:            a.Ctime,
		Utime:            a.Utime,
	}
}

func (r *addressRepository) toEntity(a domain.Address) dao.Address {
	return dao.Address{
		Id:               a.ID,
		Uid:              a.Uid,
		StreetAddress:    a.StreetAddress,
		ApartmentAddress: a.ApartmentAddress,
		Country:          a.Country,
		Zip:              a.Zip,
		Type:             a.Type.ToUint8(),
		Default:          a.Default,
	}
}
