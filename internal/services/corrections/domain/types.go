// Package domain defines the correction store types and ports
package domain

import (
	"time"

	"scribe/internal/core/learn"
)

// Correction is one learned substitution for one user.
// (UserID, Original, Corrected) is unique; Count only ever grows
type Correction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Original    string    `json:"original"`
	Corrected   string    `json:"corrected"`
	Count       int       `json:"count"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
	Disabled    bool      `json:"disabled"`
}

// Rule projects a stored correction into the applier's view
func (c Correction) Rule() learn.Rule {
	return learn.Rule{
		Original:  c.Original,
		Corrected: c.Corrected,
		Count:     c.Count,
		Disabled:  c.Disabled,
	}
}

// Rules projects a slice of corrections for the applier
func Rules(cs []Correction) []learn.Rule {
	out := make([]learn.Rule, len(cs))
	for i, c := range cs {
		out[i] = c.Rule()
	}
	return out
}
