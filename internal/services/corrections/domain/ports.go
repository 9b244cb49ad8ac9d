package domain

import "context"

// StorePort is the correction store contract the personalisation engine uses.
// Every call is scoped to one user
type StorePort interface {
	// Upsert records one observation, inserting at count 1 or incrementing
	Upsert(ctx context.Context, userID, original, corrected string) (Correction, error)
	// List returns enabled corrections with count >= minCount, most frequent first
	List(ctx context.Context, userID string, minCount int) ([]Correction, error)
	// Disable stops a correction from being applied; its count is untouched
	Disable(ctx context.Context, userID, id string) (Correction, error)
	// Enable reverses Disable
	Enable(ctx context.Context, userID, id string) (Correction, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	StorePort
	Get(ctx context.Context, userID, id string) (Correction, error)
	Browse(ctx context.Context, userID string, in ListInput) ([]Correction, error)
	Clear(ctx context.Context, userID string) (ClearResult, error)
}
