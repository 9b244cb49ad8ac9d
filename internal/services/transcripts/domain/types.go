// Package domain defines transcript types and ports
package domain

import (
	"time"

	"scribe/internal/core/learn"
	persdomain "scribe/internal/services/personalize/domain"
)

// Transcript is one dictation owned by one user.
// RawText is what the recogniser produced and never changes;
// PersonalizedText is RawText after learned corrections;
// FinalText is what the user saved, nil until the first edit
type Transcript struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title,omitempty"`
	RawText          string    `json:"raw_text"`
	PersonalizedText string    `json:"personalized_text"`
	FinalText        *string   `json:"final_text,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Created is a stored transcript plus what personalisation did to it
type Created struct {
	Transcript Transcript  `json:"transcript"`
	Applied    []learn.Hit `json:"applied,omitempty"`
	FailedOpen bool        `json:"failed_open,omitempty"`
}

// Edited is a transcript after a final text save plus what it taught the store
type Edited struct {
	Transcript Transcript            `json:"transcript"`
	Learning   persdomain.EditResult `json:"learning"`
}
