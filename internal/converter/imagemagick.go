package converter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// DefaultBinary is the ImageMagick command looked up on PATH.
const DefaultBinary = "convert"

// ImageMagick shells out to `<binary> <in> -colorspace Gray <out>`.
type ImageMagick struct {
	Binary string
}

// NewImageMagick returns a backend using binary, or DefaultBinary if empty.
func NewImageMagick(binary string) *ImageMagick {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ImageMagick{Binary: binary}
}

var _ Backend = (*ImageMagick)(nil)

// Args returns the command-line arguments for one conversion.
func Args(in, out string) []string {
	return []string{in, "-colorspace", "Gray", out}
}

// Convert runs the tool and waits for it. A non-zero exit carries the
// captured stderr; a failure to start (missing binary, permissions) does not.
func (m *ImageMagick) Convert(ctx context.Context, in, out string) error {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.Binary, Args(in, out)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Error{Stderr: strings.TrimSpace(stderr.String()), Err: err}
		}
		return &Error{Err: err}
	}
	return nil
}
