// Package mocks provides test doubles for the kakaoplace client.
package mocks

import (
	"context"

	kakaoplace "github.com/faithmap/faithmap/pkg/kakaoplace"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Detail provides a mock function with given fields: ctx, placeID
func (_m *MockClient) Detail(ctx context.Context, placeID string) (*kakaoplace.Place, error) {
	ret := _m.Called(ctx, placeID)

	if len(ret) == 0 {
		panic("no return value specified for Detail")
	}

	var r0 *kakaoplace.Place
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*kakaoplace.Place, error)); ok {
		return rf(ctx, placeID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *kakaoplace.Place); ok {
		r0 = rf(ctx, placeID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*kakaoplace.Place)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, placeID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
