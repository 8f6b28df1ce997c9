package mocks

import (
	"dungeon-master/internal/chat"

	"github.com/stretchr/testify/mock"
)

// MockProgress is a mock type for the Progress type
type MockProgress struct {
	mock.Mock
}

// Announce provides a mock function with given fields: message
func (_m *MockProgress) Announce(message string) {
	_m.Called(message)
}

// Clear provides a mock function with given fields:
func (_m *MockProgress) Clear() {
	_m.Called()
}

// NewMockProgress creates a new instance of MockProgress. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockProgress(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProgress {
	m := &MockProgress{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ chat.Progress = (*MockProgress)(nil)
