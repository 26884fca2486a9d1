// Package mocks holds testify mocks of the service interfaces used by the handlers.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

func ret[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)

	return v
}

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })
}
