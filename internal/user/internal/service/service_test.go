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
	"testing"

	"github.com/ecodeclub/estore/internal/address"
	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/payment"
	"github.com/ecodeclub/estore/internal/user/internal/domain"
	"github.com/ecodeclub/estore/internal/user/internal/repository"
	"github.com/ecodeclub/estore/internal/user/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUid = int64(8391)

func newTestService() (Service, *cascadeRecorder) {
	rec := &cascadeRecorder{}
	repo := newFakeProfileRepo()
	return NewService(repo,
		&fakeOrderService{rec: rec},
		&fakeAddressService{rec: rec},
		&fakePaymentService{rec: rec},
	), rec
}

func TestService_InitProfile(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.InitProfile(ctx, testUid))
	p, err := svc.FindProfile(ctx, testUid)
	require.NoError(t, err)
	assert.Equal(t, testUid, p.Uid)
	assert.False(t, p.OneClickPurchasing)

	// 幂等, 重复初始化不覆盖已有档案
	require.NoError(t, svc.UpdateOneClickPurchasing(ctx, testUid, true))
	require.NoError(t, svc.InitProfile(ctx, testUid))
	p, err = svc.FindProfile(ctx, testUid)
	require.NoError(t, err)
	assert.True(t, p.OneClickPurchasing)
}

func TestService_FindProfile(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	_, err := svc.FindProfile(context.Background(), testUid)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestService_SaveGatewayCustomerID(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.InitProfile(ctx, testUid))

	require.NoError(t, svc.SaveGatewayCustomerID(ctx, testUid, "cus_9x7"))
	p, err := svc.FindProfile(ctx, testUid)
	require.NoError(t, err)
	assert.Equal(t, "cus_9x7", p.GatewayCustomerID)
}

func TestService_RemoveUser(t *testing.T) {
	t.Parallel()
	svc, rec := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.InitProfile(ctx, testUid))

	require.NoError(t, svc.RemoveUser(ctx, testUid))

	// 订单和地址删除, 支付流水只解绑
	assert.Equal(t, []string{"order", "address", "payment"}, rec.calls)
	_, err := svc.FindProfile(ctx, testUid)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

type cascadeRecorder struct {
	calls []string
}

type fakeOrderService struct {
	order.Service
	rec *cascadeRecorder
}

func (f *fakeOrderService) RemoveByUid(ctx context.Context, uid int64) error {
	f.rec.calls = append(f.rec.calls, "order")
	return nil
}

type fakeAddressService struct {
	address.Service
	rec *cascadeRecorder
}

func (f *fakeAddressService) RemoveByUid(ctx context.Context, uid int64) error {
	f.rec.calls = append(f.rec.calls, "address")
	return nil
}

type fakePaymentService struct {
	payment.Service
	rec *cascadeRecorder
}

func (f *fakePaymentService) DetachUser(ctx context.Context, uid int64) error {
	f.rec.calls = append(f.rec.calls, "payment")
	return nil
}

type fakeProfileRepo struct {
	byUid map[int64]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUid: make(map[int64]*domain.Profile)}
}

var _ repository.ProfileRepository = (*fakeProfileRepo)(nil)

func (f *fakeProfileRepo) Create(ctx context.Context, p domain.Profile) error {
	if _, ok := f.byUid[p.Uid]; ok {
		return nil
	}
	p.ID = int64(len(f.byUid)) + 1
	f.byUid[p.Uid] = &p
	return nil
}

func (f *fakeProfileRepo) FindByUid(ctx context.Context, uid int64) (domain.Profile, error) {
	p, ok := f.byUid[uid]
	if !ok {
		return domain.Profile{}, dao.ErrRecordNotFound
	}
	return *p, nil
}

func (f *fakeProfileRepo) UpdateOneClickPurchasing(ctx context.Context, uid int64, enabled bool) error {
	p, ok := f.byUid[uid]
	if !ok {
		return dao.ErrRecordNotFound
	}
	p.OneClickPurchasing = enabled
	return nil
}

func (f *fakeProfileRepo) UpdateGatewayCustomerID(ctx context.Context, uid int64, customerID string) error {
	p, ok := f.byUid[uid]
	if !ok {
		return dao.ErrRecordNotFound
	}
	p.GatewayCustomerID = customerID
	return nil
}

func (f *fakeProfileRepo) DeleteByUid(ctx context.Context, uid int64) error {
	delete(f.byUid, uid)
	return nil
}
