package converter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"imgconv/internal/config"
	"imgconv/internal/converter/mocks"
	"imgconv/internal/model"
)

type panicBackend struct{}

func (panicBackend) Convert(context.Context, string, string) error { panic("boom") }

func TestNew(t *testing.T) {
	b, err := New(config.ConverterConfig{Backend: "imagemagick", Binary: "magick"})
	assert.NoError(t, err)
	assert.Equal(t, &ImageMagick{Binary: "magick"}, b)

	b, err = New(config.ConverterConfig{})
	assert.NoError(t, err)
	assert.Equal(t, &ImageMagick{Binary: "convert"}, b)

	b, err = New(config.ConverterConfig{Backend: "native"})
	assert.NoError(t, err)
	assert.IsType(t, Native{}, b)

	_, err = New(config.ConverterConfig{Backend: "gimp"})
	assert.Error(t, err)
}

func TestConvertToGrayscale(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		backendErr error
		wantOK     bool
		wantStderr string
	}{
		{name: "success", wantOK: true},
		{name: "tool failure", backendErr: &Error{Stderr: "convert: no decode delegate", Err: errors.New("exit status 1")}, wantStderr: "convert: no decode delegate"},
		{name: "plain error is wrapped", backendErr: errors.New("exec: not found")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(mocks.MockBackend)
			b.On("Convert", mock.Anything, "/in.jpg", "/out.jpg").Return(tt.backendErr).Once()

			ok, err := ConvertToGrayscale(ctx, b, "/in.jpg", "/out.jpg")

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, model.ErrConversion)
				var convErr *Error
				assert.ErrorAs(t, err, &convErr)
				assert.Equal(t, tt.wantStderr, convErr.Stderr)
			}
			b.AssertExpectations(t)
		})
	}
}

func TestConvertToGrayscale_RecoversPanic(t *testing.T) {
	ok, err := ConvertToGrayscale(context.Background(), panicBackend{}, "in", "out")

	assert.False(t, ok)
	assert.ErrorIs(t, err, model.ErrConversion)
	assert.Contains(t, err.Error(), "boom")
}

func TestConvertToGrayscale_NilBackend(t *testing.T) {
	ok, err := ConvertToGrayscale(context.Background(), nil, "in", "out")

	assert.False(t, ok)
	assert.ErrorIs(t, err, model.ErrConversion)
}

func TestError(t *testing.T) {
	e := &Error{Stderr: "bad", Err: errors.New("exit status 1")}
	assert.Equal(t, "conversion failed: exit status 1: bad", e.Error())

	e = &Error{Err: errors.New("not found")}
	assert.Equal(t, "conversion failed: not found", e.Error())
}
