package repository

import "context"

// SessionStore keeps short-lived per-visitor state read once then cleared.
type SessionStore interface {
	SaveLastOrders(ctx context.Context, sessionID string, ids []int64) error
	PopLastOrders(ctx context.Context, sessionID string) ([]int64, error)
	PushFlash(ctx context.Context, sessionID string, level, message string) error
	PopFlashes(ctx context.Context, sessionID string) ([]Flash, error)
}

// Flash is a one-shot message shown after a form redirect.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
