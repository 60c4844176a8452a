package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"imgconv/internal/config"
	"imgconv/internal/model"
)

// Backend turns the image at in into a grayscale image at out.
type Backend interface {
	Convert(ctx context.Context, in, out string) error
}

// Error is a failed conversion. Stderr holds the tool's diagnostics, if any.
type Error struct {
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("conversion failed: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("conversion failed: %v", e.Err)
}

func (e *Error) Unwrap() []error { return []error{model.ErrConversion, e.Err} }

// New builds the backend named by cfg.Backend.
func New(cfg config.ConverterConfig) (Backend, error) {
	switch cfg.Backend {
	case "", "imagemagick":
		return NewImageMagick(cfg.Binary), nil
	case "native":
		return Native{}, nil
	default:
		return nil, fmt.Errorf("unknown converter backend %q", cfg.Backend)
	}
}

// ConvertToGrayscale runs b and reports ok=false with a conversion error
// instead of panicking or leaking backend-specific failures. The output
// path must be treated as unusable whenever ok is false.
func ConvertToGrayscale(ctx context.Context, b Backend, in, out string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = &Error{Err: fmt.Errorf("backend panic: %v", r)}
			slog.Error("Unexpected conversion error", "input", in, "error", err.Error())
		}
	}()

	if b == nil {
		return false, &Error{Err: errors.New("no backend configured")}
	}

	if err := b.Convert(ctx, in, out); err != nil {
		var convErr *Error
		if !errors.As(err, &convErr) {
			convErr = &Error{Err: err}
		}
		if convErr.Stderr != "" {
			slog.Error("Conversion failed", "input", in, "output", out, "stderr", convErr.Stderr)
		} else {
			slog.Error("Unexpected conversion error", "input", in, "output", out, "error", convErr.Err.Error())
		}
		return false, convErr
	}
	return true, nil
}
