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
	"fmt"

	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/refund/internal/domain"
	"github.com/ecodeclub/estore/internal/refund/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

// ErrRefundNotAllowed 订单不处于可申请退款的状态
var ErrRefundNotAllowed = order.ErrInvalidTransition

//go:generate mockgen -source=./service.go -package=refundmocks -destination=../../mocks/refund.mock.go Service
type Service interface {
	// RequestRefund 用户对已下单的订单发起退款申请
	RequestRefund(ctx context.Context, req domain.Refund) (int64, error)
	// DecideRefund 管理端处理申请: 同意则订单退款子状态置为已同意,
	// 拒绝则删除申请单并允许用户重新申请
	DecideRefund(ctx context.Context, orderSN string, accepted bool) error
	// ForceGrantRefund 管理端跳过申请流程批量强制退款, 返回实际生效数
	ForceGrantRefund(ctx context.Context, orderSNs []string) (int64, error)
	FindByOrderSN(ctx context.Context, orderSN string) (domain.Refund, error)
	ListRefunds(ctx context.Context, offset, limit int) ([]domain.Refund, int64, error)
}

func NewService(repo repository.RefundRepository, orderSvc order.Service) Service {
	return &service{
		repo:     repo,
		orderSvc: orderSvc,
		l:        elog.DefaultLogger,
	}
}

type service struct {
	repo     repository.RefundRepository
	orderSvc order.Service
	l        *elog.Component
}

func (s *service) RequestRefund(ctx context.Context, req domain.Refund) (int64, error) {
	// 先翻转订单上的退款子状态, 守卫条件挡住重复申请和购物车订单
	o, err := s.orderSvc.MarkRefundRequested(ctx, req.Uid, req.OrderSN)
	if err != nil {
		return 0, fmt.Errorf("申请退款失败: %w", err)
	}
	req.OrderID = o.ID
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		// 子状态已翻转但申请单落库失败, 回滚子状态使用户可以重试
		s.l.Error("创建退款申请单失败",
			elog.FieldErr(err),
			elog.String("order_sn", req.OrderSN),
			elog.Int64("uid", req.Uid),
		)
		if rerr := s.orderSvc.ResetRefundRequested(ctx, req.OrderSN); rerr != nil {
			s.l.Error("回滚订单退款子状态失败",
				elog.FieldErr(rerr),
				elog.String("order_sn", req.OrderSN),
			)
		}
		return 0, err
	}
	return id, nil
}

func (s *service) DecideRefund(ctx context.Context, orderSN string, accepted bool) error {
	if accepted {
		// 与 RequestRefund 同构: 先走订单上的守卫式翻转, 再改申请单,
		// 申请单写失败时回滚子状态, 保证重试总能收敛
		if err := s.orderSvc.MarkRefundGranted(ctx, orderSN); err != nil {
			return err
		}
		if err := s.repo.Accept(ctx, orderSN); err != nil {
			s.l.Error("标记退款申请单失败",
				elog.FieldErr(err),
				elog.String("order_sn", orderSN),
			)
			if rerr := s.orderSvc.RevertRefundGranted(ctx, orderSN); rerr != nil {
				s.l.Error("回滚订单退款子状态失败",
					elog.FieldErr(rerr),
					elog.String("order_sn", orderSN),
				)
			}
			return err
		}
		return nil
	}
	// 拒绝: 先删申请单再复位子状态
	// 删除幂等且只命中未同意的申请单, 复位失败后重试拒绝即可收敛
	if err := s.repo.DeleteByOrderSN(ctx, orderSN); err != nil {
		return err
	}
	return s.orderSvc.ResetRefundRequested(ctx, orderSN)
}

func (s *service) ForceGrantRefund(ctx context.Context, orderSNs []string) (int64, error) {
	n, err := s.orderSvc.ForceGrantRefund(ctx, orderSNs)
	if err != nil {
		return 0, err
	}
	// 已有申请单的一并标记为同意, 没有申请单的订单不需要补单
	if _, err = s.repo.AcceptBatch(ctx, orderSNs); err != nil {
		s.l.Error("批量更新退款申请单失败", elog.FieldErr(err))
	}
	return n, nil
}

func (s *service) FindByOrderSN(ctx context.Context, orderSN string) (domain.Refund, error) {
	return s.repo.FindByOrderSN(ctx, orderSN)
}

func (s *service) ListRefunds(ctx context.Context, offset, limit int) ([]domain.Refund, int64, error) {
	var (
		eg    errgroup.Group
		rs    []domain.Refund
		total int64
	)
	eg.Go(func() error {
		var err error
		rs, err = s.repo.List(ctx, offset, limit)
		return err
	})

	eg.Go(func() error {
		var err error
		total, err = s.repo.Total(ctx)
		return err
	})
	return rs, total, eg.Wait()
}
