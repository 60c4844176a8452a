package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	htmlDirName      = "html"
	originalDirName  = "original"
	convertedDirName = "converted"

	resultTemplateName = "result.html"
	errorTemplateName  = "error.html"
)

// Layout names the directories and templates the pipeline works with,
// all fixed relative to BaseDir.
type Layout struct {
	BaseDir        string
	HTMLDir        string
	OriginalDir    string
	ConvertedDir   string
	ResultTemplate string
	ErrorTemplate  string
}

// NewLayout derives the fixed layout under base.
func NewLayout(base string) Layout {
	html := filepath.Join(base, htmlDirName)
	return Layout{
		BaseDir:        base,
		HTMLDir:        html,
		OriginalDir:    filepath.Join(base, originalDirName),
		ConvertedDir:   filepath.Join(base, convertedDirName),
		ResultTemplate: filepath.Join(html, resultTemplateName),
		ErrorTemplate:  filepath.Join(html, errorTemplateName),
	}
}

// EnsureLayout creates the html, original and converted directories if absent.
// Call it once at startup, before any request is served.
func (l Layout) EnsureLayout() error {
	for _, dir := range []string{l.HTMLDir, l.OriginalDir, l.ConvertedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Check reports whether every layout directory exists.
func (l Layout) Check() error {
	for _, dir := range []string{l.HTMLDir, l.OriginalDir, l.ConvertedDir} {
		fi, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}
	return nil
}

// OriginalPath returns the path of a stored original by unique name.
func (l Layout) OriginalPath(name string) string {
	return filepath.Join(l.OriginalDir, name)
}

// ConvertedPath returns the path of a converted output by unique name.
func (l Layout) ConvertedPath(name string) string {
	return filepath.Join(l.ConvertedDir, name)
}
