package document

import "errors"

// ErrFrozen is returned when a stage writes to a document after it has
// been frozen for submission.
var ErrFrozen = errors.New("document is frozen")

// TemplateError reports a template snapshot the pipeline refuses to
// start from.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return "invalid template: " + e.Message + ": " + e.Cause.Error()
	}
	return "invalid template: " + e.Message
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
