package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Convert(ctx context.Context, in, out string) error {
	args := m.Called(ctx, in, out)
	return args.Error(0)
}
