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

// Refund 退款申请单, 订单上的退款子状态是真正的状态机,
// 这里只保存申请的内容和处理结果
type Refund struct {
	ID      int64
	OrderID int64
	// OrderSN 申请退款的订单号, 一个订单至多一张未处理的申请单
	OrderSN string
	Uid     int64
	Reason  string
	// Email 接收处理结果通知的邮箱
	Email    string
	Accepted bool
	Ctime    int64
	Utime    int64
}
