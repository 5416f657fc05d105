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

	"github.com/ecodeclub/estore/internal/catalog/internal/domain"
	"github.com/ecodeclub/estore/internal/catalog/internal/repository"
	"github.com/ecodeclub/estore/internal/catalog/internal/repository/dao"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrItemNotFound 商品Slug没有对应的商品
	ErrItemNotFound = errors.New("商品不存在")
	// ErrInvalidDiscountPrice 折扣价必须小于原价
	ErrInvalidDiscountPrice = errors.New("折扣价必须小于原价")
)

//go:generate mockgen -source=./service.go -package=catalogmocks -destination=../../mocks/catalog.mock.go Service
type Service interface {
	FindBySlug(ctx context.Context, slug string) (domain.Item, error)
	ListItems(ctx context.Context, offset, limit int) ([]domain.Item, int64, error)
	// SaveItem 管理端创建商品, 商品一旦被订单行引用不允许再修改价格
	SaveItem(ctx context.Context, item domain.Item) (int64, error)
}

func NewService(repo repository.ItemRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ItemRepository
}

func (s *service) FindBySlug(ctx context.Context, slug string) (domain.Item, error) {
	item, err := s.repo.FindBySlug(ctx, slug)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.Item{}, fmt.Errorf("%w: slug=%s", ErrItemNotFound, slug)
	}
	return item, err
}

func (s *service) ListItems(ctx context.Context, offset, limit int) ([]domain.Item, int64, error) {
	var (
		eg    errgroup.Group
		items []domain.Item
		total int64
	)
	eg.Go(func() error {
		var err error
		items, err = s.repo.List(ctx, offset, limit)
		return err
	})

	eg.Go(func() error {
		var err error
		total, err = s.repo.Total(ctx)
		return err
	})
	return items, total, eg.Wait()
}

func (s *service) SaveItem(ctx context.Context, item domain.Item) (int64, error) {
	if item.DiscountPrice > 0 && item.DiscountPrice >= item.Price {
		return 0, ErrInvalidDiscountPrice
	}
	return s.repo.Save(ctx, item)
}
