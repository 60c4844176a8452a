package converter

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgconv/internal/model"
)

// fakeTool writes an executable shell script standing in for ImageMagick.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "convert")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestArgs(t *testing.T) {
	assert.Equal(t, []string{"/o/a.jpg", "-colorspace", "Gray", "/c/a.jpg"}, Args("/o/a.jpg", "/c/a.jpg"))
}

func TestNewImageMagick(t *testing.T) {
	assert.Equal(t, DefaultBinary, NewImageMagick("").Binary)
	assert.Equal(t, "magick", NewImageMagick("magick").Binary)
}

func TestImageMagick_Convert(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jpg")
	out := filepath.Join(dir, "out.jpg")

	t.Run("passes arguments in order", func(t *testing.T) {
		tool := fakeTool(t, `echo "$1 $2 $3" > "$4"`)

		err := NewImageMagick(tool).Convert(ctx, in, out)

		require.NoError(t, err)
		b, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, in+" -colorspace Gray\n", string(b))
	})

	t.Run("non-zero exit captures stderr", func(t *testing.T) {
		tool := fakeTool(t, `echo "convert: improper image header" >&2; exit 1`)

		err := NewImageMagick(tool).Convert(ctx, in, out)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConversion)
		var convErr *Error
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "convert: improper image header", convErr.Stderr)
		var exitErr *exec.ExitError
		assert.True(t, errors.As(err, &exitErr))
	})

	t.Run("missing binary", func(t *testing.T) {
		err := NewImageMagick(filepath.Join(dir, "does-not-exist")).Convert(ctx, in, out)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConversion)
		var convErr *Error
		require.ErrorAs(t, err, &convErr)
		assert.Empty(t, convErr.Stderr)
	})
}
