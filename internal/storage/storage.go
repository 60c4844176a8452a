package storage

import (
	"context"
	"io"

	"imgconv/internal/model"
)

// Store persists validated uploads.
// Implementations must stream the reader and never hold the whole file in memory.
type Store interface {
	// Save writes r under a freshly generated unique name whose extension
	// follows contentType, and returns the stored file.
	Save(ctx context.Context, r io.Reader, contentType string) (model.StoredFile, error)
}
