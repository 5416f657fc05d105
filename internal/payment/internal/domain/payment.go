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

// Payment 一次外部扣款的不可变记录
// 用户被删除后 Uid 会被置空, 但支付记录本身永久保留
type Payment struct {
	ID int64
	SN string
	// Uid 扣款用户, 0 表示用户已被删除
	Uid int64
	// Amount 实际扣款金额;单位为分, 999表示9.99元
	Amount int64
	// ChargeSN 网关返回的扣款凭证号
	ChargeSN string
	// PaidAt 扣款完成时间, 毫秒时间戳
	PaidAt int64
	Ctime  int64
}
