package upload

import (
	"mime/multipart"
	"strings"

	"imgconv/internal/model"
)

// FieldName is the multipart field carrying the image.
const FieldName = "image"

// validationError carries the message shown to the user on the error page.
type validationError string

func (e validationError) Error() string { return string(e) }

func (e validationError) Is(target error) bool { return target == model.ErrValidation }

var (
	ErrMissingFile     error = validationError("No file uploaded")
	ErrMissingFilename error = validationError("No filename provided")
	ErrUnsupportedType error = validationError("Invalid file type. Only JPEG and PNG are allowed.")
)

// Validate inspects the image field of form and returns its declared content type.
//
// A part submitted without a filename is parsed as a plain value by
// mime/multipart, so it shows up in form.Value rather than form.File.
// The declared type is trusted as is: no sniffing, only parameters such as
// "; charset=" are dropped before the exact comparison.
func Validate(form *multipart.Form) (string, error) {
	if form == nil {
		return "", ErrMissingFile
	}
	files := form.File[FieldName]
	if len(files) == 0 {
		if _, ok := form.Value[FieldName]; ok {
			return "", ErrMissingFilename
		}
		return "", ErrMissingFile
	}

	fh := files[0]
	if fh.Filename == "" {
		return "", ErrMissingFilename
	}

	ct := DeclaredType(fh)
	if ct != model.ContentTypeJPEG && ct != model.ContentTypePNG {
		return "", ErrUnsupportedType
	}
	return ct, nil
}

// DeclaredType returns the part's Content-Type without parameters.
func DeclaredType(fh *multipart.FileHeader) string {
	ct, _, _ := strings.Cut(fh.Header.Get("Content-Type"), ";")
	return strings.TrimSpace(ct)
}

// File returns the first image part of form, or nil.
func File(form *multipart.Form) *multipart.FileHeader {
	if form == nil || len(form.File[FieldName]) == 0 {
		return nil
	}
	return form.File[FieldName][0]
}
