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
	"testing"

	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/refund/internal/domain"
	"github.com/ecodeclub/estore/internal/refund/internal/repository"
	"github.com/ecodeclub/estore/internal/refund/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUid = int64(6217)

func newTestService() (Service, *fakeOrderService, *fakeRefundRepo) {
	orderSvc := &fakeOrderService{refundStatus: map[string]order.RefundStatus{
		"20240101000012345678": order.RefundStatusNone,
		"20240102000087654321": order.RefundStatusNone,
	}}
	repo := newFakeRefundRepo()
	return NewService(repo, orderSvc), orderSvc, repo
}

func TestService_RequestRefund(t *testing.T) {
	t.Parallel()
	t.Run("申请成功_订单子状态翻转且申请单落库", func(t *testing.T) {
		t.Parallel()
		svc, orderSvc, _ := newTestService()
		ctx := context.Background()
		id, err := svc.RequestRefund(ctx, domain.Refund{
			Uid:     testUid,
			OrderSN: "20240101000012345678",
			Reason:  "商品有瑕疵",
			Email:   "buyer@example.com",
		})
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))
		assert.Equal(t, order.RefundStatusRequested, orderSvc.refundStatus["20240101000012345678"])

		got, err := svc.FindByOrderSN(ctx, "20240101000012345678")
		require.NoError(t, err)
		assert.Equal(t, "商品有瑕疵", got.Reason)
		assert.False(t, got.Accepted)
	})

	t.Run("重复申请被拒绝", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()
		ctx := context.Background()
		_, err := svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		require.NoError(t, err)
		_, err = svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		assert.ErrorIs(t, err, ErrRefundNotAllowed)
	})

	t.Run("申请单落库失败时回滚订单子状态", func(t *testing.T) {
		t.Parallel()
		orderSvc := &fakeOrderService{refundStatus: map[string]order.RefundStatus{
			"20240101000012345678": order.RefundStatusNone,
		}}
		repo := newFakeRefundRepo()
		repo.createErr = dao.ErrDuplicatedOrderSN
		svc := NewService(repo, orderSvc)

		_, err := svc.RequestRefund(context.Background(), domain.Refund{
			Uid:     testUid,
			OrderSN: "20240101000012345678",
		})
		assert.ErrorIs(t, err, dao.ErrDuplicatedOrderSN)
		assert.Equal(t, order.RefundStatusNone, orderSvc.refundStatus["20240101000012345678"])
	})
}

func TestService_DecideRefund(t *testing.T) {
	t.Parallel()
	t.Run("同意退款", func(t *testing.T) {
		t.Parallel()
		svc, orderSvc, _ := newTestService()
		ctx := context.Background()
		_, err := svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		require.NoError(t, err)

		require.NoError(t, svc.DecideRefund(ctx, "20240101000012345678", true))
		assert.Equal(t, order.RefundStatusGranted, orderSvc.refundStatus["20240101000012345678"])

		got, err := svc.FindByOrderSN(ctx, "20240101000012345678")
		require.NoError(t, err)
		assert.True(t, got.Accepted)
	})

	t.Run("拒绝退款后可以再次申请", func(t *testing.T) {
		t.Parallel()
		svc, orderSvc, _ := newTestService()
		ctx := context.Background()
		_, err := svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		require.NoError(t, err)

		require.NoError(t, svc.DecideRefund(ctx, "20240101000012345678", false))
		assert.Equal(t, order.RefundStatusNone, orderSvc.refundStatus["20240101000012345678"])
		_, err = svc.FindByOrderSN(ctx, "20240101000012345678")
		assert.ErrorIs(t, err, dao.ErrRecordNotFound)

		_, err = svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		assert.NoError(t, err)
	})

	t.Run("同意没有申请过退款的订单", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()
		err := svc.DecideRefund(context.Background(), "20240101000012345678", true)
		assert.ErrorIs(t, err, ErrRefundNotAllowed)
	})

	t.Run("同意时申请单写失败_回滚订单子状态后重试可收敛", func(t *testing.T) {
		t.Parallel()
		svc, orderSvc, repo := newTestService()
		ctx := context.Background()
		_, err := svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		require.NoError(t, err)

		repo.acceptErr = errors.New("mock: 数据库抖动")
		err = svc.DecideRefund(ctx, "20240101000012345678", true)
		require.Error(t, err)
		// 子状态回到已申请, 申请单保持未同意, 没有中间态残留
		assert.Equal(t, order.RefundStatusRequested, orderSvc.refundStatus["20240101000012345678"])
		got, err := svc.FindByOrderSN(ctx, "20240101000012345678")
		require.NoError(t, err)
		assert.False(t, got.Accepted)

		repo.acceptErr = nil
		require.NoError(t, svc.DecideRefund(ctx, "20240101000012345678", true))
		assert.Equal(t, order.RefundStatusGranted, orderSvc.refundStatus["20240101000012345678"])
	})

	t.Run("子状态已申请但申请单缺失_同意被回滚", func(t *testing.T) {
		t.Parallel()
		orderSvc := &fakeOrderService{refundStatus: map[string]order.RefundStatus{
			"20240101000012345678": order.RefundStatusRequested,
		}}
		svc := NewService(newFakeRefundRepo(), orderSvc)

		err := svc.DecideRefund(context.Background(), "20240101000012345678", true)
		assert.ErrorIs(t, err, dao.ErrRecordNotFound)
		assert.Equal(t, order.RefundStatusRequested, orderSvc.refundStatus["20240101000012345678"])
	})

	t.Run("已同意的退款不能再被拒绝", func(t *testing.T) {
		t.Parallel()
		svc, orderSvc, _ := newTestService()
		ctx := context.Background()
		_, err := svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		require.NoError(t, err)
		require.NoError(t, svc.DecideRefund(ctx, "20240101000012345678", true))

		err = svc.DecideRefund(ctx, "20240101000012345678", false)
		assert.ErrorIs(t, err, ErrRefundNotAllowed)
		// 已同意的申请单不会被拒绝路径的删除误伤
		got, err := svc.FindByOrderSN(ctx, "20240101000012345678")
		require.NoError(t, err)
		assert.True(t, got.Accepted)
		assert.Equal(t, order.RefundStatusGranted, orderSvc.refundStatus["20240101000012345678"])
	})

	t.Run("拒绝时复位子状态失败_重试可收敛", func(t *testing.T) {
		t.Parallel()
		svc, orderSvc, _ := newTestService()
		ctx := context.Background()
		_, err := svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		require.NoError(t, err)

		orderSvc.resetErr = errors.New("mock: 数据库抖动")
		err = svc.DecideRefund(ctx, "20240101000012345678", false)
		require.Error(t, err)
		assert.Equal(t, order.RefundStatusRequested, orderSvc.refundStatus["20240101000012345678"])

		orderSvc.resetErr = nil
		require.NoError(t, svc.DecideRefund(ctx, "20240101000012345678", false))
		assert.Equal(t, order.RefundStatusNone, orderSvc.refundStatus["20240101000012345678"])
		// 复位之后可以重新申请
		_, err = svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
		assert.NoError(t, err)
	})
}

func TestService_ForceGrantRefund(t *testing.T) {
	t.Parallel()
	svc, orderSvc, _ := newTestService()
	ctx := context.Background()
	// 其中一单已有申请, 另一单没有
	_, err := svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
	require.NoError(t, err)

	n, err := svc.ForceGrantRefund(ctx, []string{"20240101000012345678", "20240102000087654321"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, order.RefundStatusGranted, orderSvc.refundStatus["20240101000012345678"])
	assert.Equal(t, order.RefundStatusGranted, orderSvc.refundStatus["20240102000087654321"])

	got, err := svc.FindByOrderSN(ctx, "20240101000012345678")
	require.NoError(t, err)
	assert.True(t, got.Accepted)
}

func TestService_ListRefunds(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()
	ctx := context.Background()
	_, err := svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240101000012345678"})
	require.NoError(t, err)
	_, err = svc.RequestRefund(ctx, domain.Refund{Uid: testUid, OrderSN: "20240102000087654321"})
	require.NoError(t, err)

	rs, total, err := svc.ListRefunds(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rs, 1)
}

// fakeOrderService 只实现退款子状态相关的方法
type fakeOrderService struct {
	order.Service
	refundStatus map[string]order.RefundStatus
	resetErr     error
}

func (f *fakeOrderService) MarkRefundRequested(ctx context.Context, uid int64, sn string) (order.Order, error) {
	if f.refundStatus[sn] != order.RefundStatusNone {
		return order.Order{}, order.ErrInvalidTransition
	}
	f.refundStatus[sn] = order.RefundStatusRequested
	return order.Order{ID: 1, SN: sn, Uid: uid, Status: order.StatusOrdered}, nil
}

func (f *fakeOrderService) MarkRefundGranted(ctx context.Context, sn string) error {
	if f.refundStatus[sn] != order.RefundStatusRequested {
		return order.ErrInvalidTransition
	}
	f.refundStatus[sn] = order.RefundStatusGranted
	return nil
}

func (f *fakeOrderService) ResetRefundRequested(ctx context.Context, sn string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	if f.refundStatus[sn] != order.RefundStatusRequested {
		return order.ErrInvalidTransition
	}
	f.refundStatus[sn] = order.RefundStatusNone
	return nil
}

func (f *fakeOrderService) RevertRefundGranted(ctx context.Context, sn string) error {
	if f.refundStatus[sn] != order.RefundStatusGranted {
		return order.ErrInvalidTransition
	}
	f.refundStatus[sn] = order.RefundStatusRequested
	return nil
}

func (f *fakeOrderService) ForceGrantRefund(ctx context.Context, sns []string) (int64, error) {
	var n int64
	for _, sn := range sns {
		if _, ok := f.refundStatus[sn]; ok && f.refundStatus[sn] != order.RefundStatusGranted {
			f.refundStatus[sn] = order.RefundStatusGranted
			n++
		}
	}
	return n, nil
}

type fakeRefundRepo struct {
	byOrderSN map[string]*domain.Refund
	nextID    int64
	createErr error
	acceptErr error
}

func newFakeRefundRepo() *fakeRefundRepo {
	return &fakeRefundRepo{byOrderSN: make(map[string]*domain.Refund), nextID: 1}
}

var _ repository.RefundRepository = (*fakeRefundRepo)(nil)

func (f *fakeRefundRepo) Create(ctx context.Context, r domain.Refund) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.byOrderSN[r.OrderSN]; ok {
		return 0, dao.ErrDuplicatedOrderSN
	}
	r.ID = f.nextID
	f.nextID++
	f.byOrderSN[r.OrderSN] = &r
	return r.ID, nil
}

func (f *fakeRefundRepo) FindByOrderSN(ctx context.Context, orderSN string) (domain.Refund, error) {
	r, ok := f.byOrderSN[orderSN]
	if !ok {
		return domain.Refund{}, dao.ErrRecordNotFound
	}
	return *r, nil
}

func (f *fakeRefundRepo) Accept(ctx context.Context, orderSN string) error {
	if f.acceptErr != nil {
		return f.acceptErr
	}
	r, ok := f.byOrderSN[orderSN]
	if !ok {
		return dao.ErrRecordNotFound
	}
	if r.Accepted {
		return dao.ErrAlreadyDecided
	}
	r.Accepted = true
	return nil
}

func (f *fakeRefundRepo) AcceptBatch(ctx context.Context, orderSNs []string) (int64, error) {
	var n int64
	for _, sn := range orderSNs {
		if r, ok := f.byOrderSN[sn]; ok && !r.Accepted {
			r.Accepted = true
			n++
		}
	}
	return n, nil
}

func (f *fakeRefundRepo) DeleteByOrderSN(ctx context.Context, orderSN string) error {
	if r, ok := f.byOrderSN[orderSN]; ok && !r.Accepted {
		delete(f.byOrderSN, orderSN)
	}
	return nil
}

func (f *fakeRefundRepo) List(ctx context.Context, offset, limit int) ([]domain.Refund, error) {
	var rs []domain.Refund
	for _, r := range f.byOrderSN {
		rs = append(rs, *r)
	}
	if offset >= len(rs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rs) {
		end = len(rs)
	}
	return rs[offset:end], nil
}

func (f *fakeRefundRepo) Total(ctx context.Context) (int64, error) {
	return int64(len(f.byOrderSN)), nil
}
