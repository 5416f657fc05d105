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

package catalog

import (
	"github.com/ecodeclub/estore/internal/catalog/internal/domain"
	"github.com/ecodeclub/estore/internal/catalog/internal/service"
)

type (
	Service  = service.Service
	Item     = domain.Item
	Category = domain.Category
	Label    = domain.Label
)

const (
	CategoryShirt     = domain.CategoryShirt
	CategorySportWear = domain.CategorySportWear
	CategoryOutwear   = domain.CategoryOutwear

	LabelPrimary   = domain.LabelPrimary
	LabelSecondary = domain.LabelSecondary
	LabelDanger    = domain.LabelDanger
)

var (
	ErrItemNotFound         = service.ErrItemNotFound
	ErrInvalidDiscountPrice = service.ErrInvalidDiscountPrice
)

type Module struct {
	Svc Service
}
