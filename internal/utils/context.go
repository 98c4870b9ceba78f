package utils

import (
	"context"

	"github.com/google/uuid"
)

// Context keys populated by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyEmail    = "email"
)

// GetUserIDFromContext returns the authenticated user's id, if any.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

// GetUsernameFromContext returns the authenticated user's display name, if any.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(ContextKeyUsername).(string)
	return name, ok
}

// GetEmailFromContext returns the authenticated user's email, if any.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ContextKeyEmail).(string)
	return email, ok
}
