package domain

import "time"

// CreateInput is a fresh recogniser result
type CreateInput struct {
	Title   string `json:"title,omitempty" validate:"omitempty,notblank,max=200"`
	RawText string `json:"raw_text"`
	// MinCount overrides the personalisation threshold for this call
	MinCount int `json:"min_count,omitempty" validate:"omitempty,min=1,max=1000000"`
}

// FinalInput is the user's saved edit
type FinalInput struct {
	FinalText string `json:"final_text"`
}

// ListInput pages a user's transcripts newest first
type ListInput struct {
	Limit  int        `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
	Before *time.Time `json:"before,omitempty"`
}
