// Package mocks provides test doubles for the kakao client.
package mocks

import (
	"context"

	kakao "github.com/faithmap/faithmap/pkg/kakao"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// KeywordSearch provides a mock function with given fields: ctx, query, page
func (_m *MockClient) KeywordSearch(ctx context.Context, query string, page int) (*kakao.KeywordResponse, error) {
	ret := _m.Called(ctx, query, page)

	if len(ret) == 0 {
		panic("no return value specified for KeywordSearch")
	}

	var r0 *kakao.KeywordResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int) (*kakao.KeywordResponse, error)); ok {
		return rf(ctx, query, page)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int) *kakao.KeywordResponse); ok {
		r0 = rf(ctx, query, page)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*kakao.KeywordResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int) error); ok {
		r1 = rf(ctx, query, page)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
