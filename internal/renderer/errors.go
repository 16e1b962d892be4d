// Package renderer submits normalized documents to the external
// rendering service and repairs structured validation failures.
package renderer

import (
	"fmt"
	"strings"
)

// APICallError reports a transport-level or non-validation HTTP failure
// from the rendering service.
type APICallError struct {
	Message    string
	StatusCode int
	Body       string
	Cause      error
}

func (e *APICallError) Error() string {
	msg := "renderer API call failed: " + e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ImportFailedError is returned when the submission still fails after
// the single repair-and-retry cycle. It carries the remaining issue
// list so the caller can decide whether to rerun the pipeline.
type ImportFailedError struct {
	Issues []Issue
}

func (e *ImportFailedError) Error() string {
	if len(e.Issues) == 0 {
		return "document import failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "document import failed after repair: " + strings.Join(parts, "; ")
}
