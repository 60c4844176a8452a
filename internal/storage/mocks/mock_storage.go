package mocks

import (
	"context"
	"io"

	"imgconv/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, r io.Reader, contentType string) (model.StoredFile, error) {
	args := m.Called(ctx, r, contentType)
	if f, ok := args.Get(0).(func(context.Context, io.Reader, string) model.StoredFile); ok {
		return f(ctx, r, contentType), args.Error(1)
	}
	return args.Get(0).(model.StoredFile), args.Error(1)
}
