package matching

import "fmt"

// JudgeError represents a failure of the semantic similarity judge. It is
// handled internally by falling back to deterministic overlap and is never
// surfaced to callers of MatchTerms.
type JudgeError struct {
	Message string
	Cause   error
}

func (e *JudgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("similarity judge error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("similarity judge error: %s", e.Message)
}

func (e *JudgeError) Unwrap() error {
	return e.Cause
}
