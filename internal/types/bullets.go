package types

// TailoredBullet is a resume bullet after the enhancement pass. At most one
// term is ever injected per bullet; Injected is nil when the bullet was
// returned unmodified.
type TailoredBullet struct {
	Original string  `json:"original"`
	Final    string  `json:"final"`
	Injected *Term   `json:"injected,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

// SummaryOutcome reports how the summary rewrite finished.
type SummaryOutcome string

// Summary rewrite terminal states.
const (
	SummaryGenerated SummaryOutcome = "generated"
	SummaryFallback  SummaryOutcome = "fallback"
)

// TailoredSummary is the result of the summary rewrite state machine.
// Attempts counts LLM attempts actually issued (0 when the deterministic
// fallback was used without a client).
type TailoredSummary struct {
	Text     string         `json:"text"`
	Outcome  SummaryOutcome `json:"outcome"`
	Attempts int            `json:"attempts"`
}
