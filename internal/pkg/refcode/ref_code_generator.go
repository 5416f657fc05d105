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

package refcode

import (
	"fmt"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// TimestampGenerateFunc 定义生成时间戳的函数类型
type TimestampGenerateFunc func(time.Time) int64

// ShortUUIDGenerateFunc 定义生成ShortUUID的函数类型
type ShortUUIDGenerateFunc func() string

// Generator 生成面向用户的订单号
type Generator struct {
	timestampGenFunc TimestampGenerateFunc
	shortUUIDGenFunc ShortUUIDGenerateFunc
}

// NewGeneratorWith 创建一个Generator实例
func NewGeneratorWith(timestampGen TimestampGenerateFunc, uuidGen ShortUUIDGenerateFunc) *Generator {
	return &Generator{
		timestampGenFunc: timestampGen,
		shortUUIDGenFunc: uuidGen,
	}
}

// NewGenerator 创建一个Generator实例
func NewGenerator() *Generator {
	return NewGeneratorWith(func(t time.Time) int64 { return t.Unix() }, func() string { return shortuuid.New() })
}

// Generate 使用用户ID生成订单号, 生成 20 位长度的字符串
func (g *Generator) Generate(uid int64) (string, error) {
	timestamp := g.timestampGenFunc(time.Now())
	lastFour := fmt.Sprintf("%04d", uid%10000)
	uuid := g.shortUUIDGenFunc()
	// 秒级时间戳 + 用户后四位 + (uuid 凑够位数) == 20 位
	return fmt.Sprintf("%d%s%s", timestamp, lastFour, uuid)[:20], nil
}
