package model

import "errors"

// Failure kinds of the upload pipeline. Stages wrap one of these with
// fmt.Errorf("...: %w") so the orchestrator can classify with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
	ErrConversion = errors.New("conversion error")
	ErrTemplate   = errors.New("template error")
	ErrInternal   = errors.New("internal error")
)
