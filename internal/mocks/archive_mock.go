package mocks

import (
	"context"

	"dungeon-master/internal/archive"
	"dungeon-master/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock type for the archive.Repository type
type MockRepository struct {
	mock.Mock
}

// Record provides a mock function with given fields: ctx, result
func (_m *MockRepository) Record(ctx context.Context, result archive.Result) error {
	ret := _m.Called(ctx, result)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, archive.Result) error); ok {
		r0 = rf(ctx, result)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Stats provides a mock function with given fields: ctx, variant
func (_m *MockRepository) Stats(ctx context.Context, variant models.Variant) (archive.Stats, error) {
	ret := _m.Called(ctx, variant)

	var r0 archive.Stats
	if rf, ok := ret.Get(0).(func(context.Context, models.Variant) archive.Stats); ok {
		r0 = rf(ctx, variant)
	} else {
		r0 = ret.Get(0).(archive.Stats)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, models.Variant) error); ok {
		r1 = rf(ctx, variant)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Close provides a mock function with given fields:
func (_m *MockRepository) Close() {
	_m.Called()
}

// NewMockRepository creates a new instance of MockRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ archive.Repository = (*MockRepository)(nil)
