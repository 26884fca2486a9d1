// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ret returns the i-th return value as T, or the zero value when it was set to nil.
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

// Transactor runs fn directly; repositories in the tests are mocks, so there is nothing to commit.
type Transactor struct {
	Calls int
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++

	return fn(ctx)
}
