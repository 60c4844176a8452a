package mocks

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Process(ctx context.Context, form *multipart.Form) string {
	args := m.Called(ctx, form)
	return args.String(0)
}
