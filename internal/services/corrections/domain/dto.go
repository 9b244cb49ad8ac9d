package domain

// ListInput filters a user's correction history.
// MinCount 0 means every record regardless of count
type ListInput struct {
	MinCount        int  `json:"min_count,omitempty" validate:"omitempty,min=0,max=1000000"`
	IncludeDisabled bool `json:"include_disabled,omitempty"`
	Limit           int  `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}

// ClearResult reports how many corrections a clear removed
type ClearResult struct {
	Deleted int64 `json:"deleted"`
}
