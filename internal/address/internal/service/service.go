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

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/estore/internal/address/internal/domain"
	"github.com/ecodeclub/estore/internal/address/internal/repository"
	"github.com/ecodeclub/estore/internal/address/internal/repository/dao"
)

var (
	// ErrAddressNotFound 地址不存在
	ErrAddressNotFound = errors.New("地址不存在")
	// ErrInvalidAddressType 地址类型非法
	ErrInvalidAddressType = errors.New("地址类型非法")
)

//go:generate mockgen -source=./service.go -package=addressmocks -destination=../../mocks/address.mock.go Service
type Service interface {
	SaveAddress(ctx context.Context, a domain.Address) (int64, error)
	// FindAddress 查找指定地址, 并校验归属用户
	FindAddress(ctx context.Context, uid, id int64) (domain.Address, error)
	FindDefault(ctx context.Context, uid int64, typ domain.AddressType) (domain.Address, error)
	ListAddresses(ctx context.Context, uid int64) ([]domain.Address, error)
	// RemoveByUid 删除用户的全部地址, 供用户删除级联使用
	RemoveByUid(ctx context.Context, uid int64) error
}

func NewService(repo repository.AddressRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.AddressRepository
}

func (s *service) SaveAddress(ctx context.Context, a domain.Address) (int64, error) {
	if a.Type != domain.AddressTypeBilling && a.Type != domain.AddressTypeShipping {
		return 0, ErrInvalidAddressType
	}
	return s.repo.Save(ctx, a)
}

func (s *service) FindAddress(ctx context.Context, uid, id int64) (domain.Address, error) {
	a, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.Address{}, fmt.Errorf("%w: id=%d", ErrAddressNotFound, id)
	}
	if err != nil {
		return domain.Address{}, err
	}
	if a.Uid != uid {
		// 不能使用他人的地址
		return domain.Address{}, fmt.Errorf("%w: id=%d", ErrAddressNotFound, id)
	}
	return a, nil
}

func (s *service) FindDefault(ctx context.Context, uid int64, typ domain.AddressType) (domain.Address, error) {
	a, err := s.repo.FindDefault(ctx, uid, typ)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.Address{}, ErrAddressNotFound
	}
	return a, err
}

func (s *service) ListAddresses(ctx context.Context, uid int64) ([]domain.Address, error) {
	return s.repo.ListByUid(ctx, uid)
}

func (s *service) RemoveByUid(ctx context.Context, uid int64) error {
	return s.repo.DeleteByUid(ctx, uid)
}
