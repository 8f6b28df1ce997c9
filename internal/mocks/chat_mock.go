package mocks

import (
	"context"

	"dungeon-master/internal/chat"
	"dungeon-master/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockChat is a mock type for the Chat type
type MockChat struct {
	mock.Mock
}

// Exchange provides a mock function with given fields: ctx, prompt, history
func (_m *MockChat) Exchange(ctx context.Context, prompt string, history []models.Turn) (string, error) {
	ret := _m.Called(ctx, prompt, history)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, []models.Turn) string); ok {
		r0 = rf(ctx, prompt, history)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, []models.Turn) error); ok {
		r1 = rf(ctx, prompt, history)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// NewMockChat creates a new instance of MockChat. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockChat(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChat {
	m := &MockChat{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ chat.Chat = (*MockChat)(nil)
