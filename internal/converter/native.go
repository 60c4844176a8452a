package converter

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Native converts in-process, keeping the input's format.
// It supports the same formats the upload validator accepts.
type Native struct {
	// JPEGQuality defaults to 90 when zero.
	JPEGQuality int
}

var _ Backend = Native{}

func (n Native) Convert(ctx context.Context, in, out string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Err: err}
	}

	src, format, err := decode(in)
	if err != nil {
		return &Error{Err: err}
	}

	gray := image.NewGray(src.Bounds())
	draw.Draw(gray, gray.Bounds(), src, src.Bounds().Min, draw.Src)

	f, err := os.Create(out)
	if err != nil {
		return &Error{Err: err}
	}

	switch format {
	case "jpeg":
		q := n.JPEGQuality
		if q == 0 {
			q = 90
		}
		err = jpeg.Encode(f, gray, &jpeg.Options{Quality: q})
	case "png":
		err = png.Encode(f, gray)
	default:
		err = fmt.Errorf("unsupported image format %q", format)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &Error{Err: err}
	}
	return nil
}

func decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}
