package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout("/var/www/webapp")

	assert.Equal(t, "/var/www/webapp/html", l.HTMLDir)
	assert.Equal(t, "/var/www/webapp/original", l.OriginalDir)
	assert.Equal(t, "/var/www/webapp/converted", l.ConvertedDir)
	assert.Equal(t, "/var/www/webapp/html/result.html", l.ResultTemplate)
	assert.Equal(t, "/var/www/webapp/html/error.html", l.ErrorTemplate)
	assert.Equal(t, "/var/www/webapp/original/a.jpg", l.OriginalPath("a.jpg"))
	assert.Equal(t, "/var/www/webapp/converted/a.jpg", l.ConvertedPath("a.jpg"))
}

func TestEnsureLayout(t *testing.T) {
	base := filepath.Join(t.TempDir(), "webapp")
	l := NewLayout(base)

	require.Error(t, l.Check())

	require.NoError(t, l.EnsureLayout())
	assert.NoError(t, l.Check())

	for _, dir := range []string{l.HTMLDir, l.OriginalDir, l.ConvertedDir} {
		fi, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, fi.IsDir())
	}

	// idempotent
	assert.NoError(t, l.EnsureLayout())
}

func TestEnsureLayout_BaseIsFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o644))

	err := NewLayout(base).EnsureLayout()
	assert.Error(t, err)
}
