package db

import (
	"context"

	"student-aid-matcher/models"
)

// SessionStore keeps query sessions until their TTL runs out.
type SessionStore interface {
	Save(ctx context.Context, session models.Session) error
	// Load returns nil, nil when the session does not exist or has expired.
	Load(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	// List returns the live sessions, newest first.
	List(ctx context.Context) ([]models.SessionSummary, error)
}
