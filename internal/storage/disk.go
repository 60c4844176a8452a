package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"imgconv/internal/model"
)

const (
	// ChunkSize is the copy buffer used when streaming an upload to disk.
	ChunkSize = 8 << 10

	timestampLayout = "20060102150405"
	maxNameAttempts = 100
)

// DiskStore writes originals into a single local directory.
// It is safe for concurrent use by multiple goroutines and processes: names are
// claimed with O_EXCL, and a clash within the same second and pid gets a
// numeric suffix instead of overwriting.
type DiskStore struct {
	dir string
	now func() time.Time
	pid int
}

// DiskOption customizes a DiskStore.
type DiskOption func(*DiskStore)

// WithClock overrides the time source used for names.
func WithClock(now func() time.Time) DiskOption {
	return func(s *DiskStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPID overrides the process identifier used for names.
func WithPID(pid int) DiskOption {
	return func(s *DiskStore) {
		s.pid = pid
	}
}

// NewDiskStore creates a store writing into dir.
func NewDiskStore(dir string, opts ...DiskOption) *DiskStore {
	s := &DiskStore{dir: dir, now: time.Now, pid: os.Getpid()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*DiskStore)(nil)

// Save streams r to a new file in 8 KiB chunks.
// A partially written file is removed before the error is returned.
func (s *DiskStore) Save(ctx context.Context, r io.Reader, contentType string) (model.StoredFile, error) {
	if r == nil {
		return model.StoredFile{}, fmt.Errorf("%w: reader is nil", model.ErrStorage)
	}
	ext := model.ExtensionFor(contentType)
	if ext == "" {
		return model.StoredFile{}, fmt.Errorf("%w: unsupported content type %q", model.ErrStorage, contentType)
	}
	if err := ctx.Err(); err != nil {
		return model.StoredFile{}, fmt.Errorf("%w: %w", model.ErrStorage, err)
	}

	created := s.now()
	f, name, err := s.create(created, ext)
	if err != nil {
		return model.StoredFile{}, fmt.Errorf("%w: %w", model.ErrStorage, err)
	}
	path := f.Name()

	// Hide ReaderFrom/WriterTo so every write goes through the fixed buffer.
	buf := make([]byte, ChunkSize)
	n, err := io.CopyBuffer(struct{ io.Writer }{f}, struct{ io.Reader }{r}, buf)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return model.StoredFile{}, fmt.Errorf("%w: %w", model.ErrStorage, err)
	}

	return model.StoredFile{
		Name:        name,
		Path:        path,
		ContentType: contentType,
		Size:        n,
		CreatedAt:   created,
	}, nil
}

func (s *DiskStore) create(t time.Time, ext string) (*os.File, string, error) {
	base := t.Format(timestampLayout) + "_" + strconv.Itoa(s.pid)
	for i := 0; i < maxNameAttempts; i++ {
		name := base + ext
		if i > 0 {
			name = base + "_" + strconv.Itoa(i) + ext
		}
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free name for %s%s after %d attempts", base, ext, maxNameAttempts)
}
