package repository

import "time"

// Outcome values stored in attempts.outcome.
const (
	OutcomeAccepted   = "accepted"
	OutcomeIncomplete = "incomplete"
	OutcomeIncorrect  = "incorrect"
	OutcomeFailed     = "failed"
)

// Attempt is one PIN submission. The PIN itself is never stored.
type Attempt struct {
	ID        string    `json:"id"`
	Outcome   string    `json:"outcome"`
	Digits    int       `json:"digits"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary counts attempts per outcome.
type Summary struct {
	Total  int            `json:"total"`
	ByKind map[string]int `json:"by_outcome"`
	Last   *time.Time     `json:"last,omitempty"`
}
