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
	"github.com/ecodeclub/estore/internal/catalog/internal/domain"
	"github.com/ecodeclub/estore/internal/catalog/internal/repository/dao"
)

type ItemRepository interface {
	FindBySlug(ctx context.Context, slug string) (domain.Item, error)
	List(ctx context.Context, offset int, limit int) ([]domain.Item, error)
	Total(ctx context.Context) (int64, error)
	Save(ctx context.Context, item domain.Item) (int64, error)
}

func NewItemRepository(d dao.ItemDAO) ItemRepository {
	return &itemRepository{d: d}
}

type itemRepository struct {
	d dao.ItemDAO
}

func (r *itemRepository) FindBySlug(ctx context.Context, slug string) (domain.Item, error) {
	item, err := r.d.FindBySlug(ctx, slug)
	if err != nil {
		return domain.Item{}, err
	}
	return r.toDomain(item), nil
}

func (r *itemRepository) List(ctx context.Context, offset int, limit int) ([]domain.Item, error) {
	items, err := r.d.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(items, func(idx int, src dao.Item) domain.Item {
		return r.toDomain(src)
	}), nil
}

func (r *itemRepository) Total(ctx context.Context) (int64, error) {
	return r.d.Count(ctx)
}

func (r *itemRepository) Save(ctx context.Context, item domain.Item) (int64, error) {
	return r.d.Save(ctx, r.toEntity(item))
}

func (r *itemRepository) toDomain(item dao.Item) domain.Item {
	return domain.Item{
		ID:            item.Id,
		Title:         item.Title,
		Price:         item.Price,
		DiscountPrice: item.DiscountPrice,
		Category:      domain.Category(item.Category),
		Label:         domain.Label(item.Label),
		Slug:          item.Slug,
		Description:   item.Description,
		Image:         item.Image,
		Ctime:         item.Ctime,
		Utime:         item.Utime,
	}
}

func (r *itemRepository) toEntity(item domain.Item) dao.Item {
	return dao.Item{
		Id:            item.ID,
		Title:         item.Title,
		Price:         item.Price,
		DiscountPrice: item.DiscountPrice,
		Category:      item.Category.ToUint8(),
		Label:         item.Label.ToUint8(),
		Slug:          item.Slug,
		Description:   item.Description,
		Image:         item.Image,
	}
}
