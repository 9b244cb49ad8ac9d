// Package net carries request identity on contexts and defines the
// response envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type userKey struct{}

// WithRequest stores the request id where chi's RequestID middleware
// would, plus the caller. Blank values are not stored
func WithRequest(ctx context.Context, requestID, userID string) context.Context {
	if requestID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, requestID)
	}
	return WithUser(ctx, userID)
}

// WithUser stores the authenticated caller
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userKey{}, userID)
}

// RequestID is the id chi assigned, or "" outside a request
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// UserID is the authenticated caller, or ""
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}
