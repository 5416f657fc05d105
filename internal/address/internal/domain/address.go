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

type AddressType uint8

func (t AddressType) ToUint8() uint8 {
	return uint8(t)
}

const (
	AddressTypeBilling  AddressType = 1
	AddressTypeShipping AddressType = 2
)

type Address struct {
	ID               int64
	Uid              int64
	StreetAddress    string
	ApartmentAddress string
	// Country ISO 3166-1 两位国家码, 国家参考数据由外部维护
	Country string
	Zip     string
	Type    AddressType
	// Default 同一用户同一类型至多一个默认地址
	Default bool
	Ctime   int64
	Utime   int64
}
