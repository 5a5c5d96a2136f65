// Package proposal holds the proposal pipeline: prompt assembly, draft
// generation with a deterministic fallback, the lifecycle status machine and
// the edit-pattern tagger.
//
// Valid status graph:
//
//	draft ──► generated ──► saved ──► sent
//	  │            │           │
//	  └────────────┴───────────┴──► sent
//
// sent is terminal. Re-applying the current status is always allowed so that
// repeated save or send calls stay idempotent.
package proposal

import "fmt"

// Status values mirror the status column in PostgreSQL.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusGenerated Status = "generated"
	StatusSaved     Status = "saved"
	StatusSent      Status = "sent"
)

// statusRank orders the lifecycle; transitions may only move forward.
var statusRank = map[Status]int{
	StatusDraft:     0,
	StatusGenerated: 1,
	StatusSaved:     2,
	StatusSent:      3,
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusRank[st]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown proposal status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
// Backward transitions are rejected; same-status overwrites pass.
func IsTransitionAllowed(from, to Status) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// IsSent returns true when status is sent.
func IsSent(s Status) bool { return s == StatusSent }
