package llm

import "fmt"

// APICallError represents a failure talking to the LLM provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LLM API error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LLM API error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// MalformedJSONError is returned when a JSON-mode response still does not
// parse after the single repair round-trip. Raw carries the last response
// body for diagnostics.
type MalformedJSONError struct {
	Raw string
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("LLM returned malformed JSON after repair attempt (%d bytes)", len(e.Raw))
}
