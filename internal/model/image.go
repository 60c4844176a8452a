package model

import "time"

// StoredFile is a persisted original upload.
// Name is unique across concurrent requests and is reused verbatim for the
// converted output; the client-supplied filename never takes part in it.
type StoredFile struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConvertedFile is the grayscale output of a StoredFile.
// It only exists once conversion has reported success.
type ConvertedFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Pair is one placeholder substitution.
type Pair struct {
	Key   string
	Value string
}

// TemplateContext is an ordered set of placeholder substitutions.
type TemplateContext []Pair

// Accepted upload content types.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

// ExtensionFor maps an accepted content type to the extension used for
// stored files. It returns "" for anything else.
func ExtensionFor(contentType string) string {
	switch contentType {
	case ContentTypeJPEG:
		return ".jpg"
	case ContentTypePNG:
		return ".png"
	default:
		return ""
	}
}
