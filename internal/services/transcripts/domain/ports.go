package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Create(ctx context.Context, userID string, in CreateInput) (Created, error)
	Get(ctx context.Context, userID, id string) (Transcript, error)
	List(ctx context.Context, userID string, in ListInput) ([]Transcript, error)
	UpdateFinal(ctx context.Context, userID, id string, in FinalInput) (Edited, error)
	Delete(ctx context.Context, userID, id string) error
	RawText(ctx context.Context, userID, id string) (string, error)
}
