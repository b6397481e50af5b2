package store

import (
	"context"
	"errors"

	"pos-kiosk-demo/internal/model"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// MutateFunc edits a session in place inside Update.
type MutateFunc func(s *model.Session)

// Store defines the interface for session persistence.
//
// Update is an atomic read-modify-write. With upsert set, a missing session is
// created with every flag cleared before fn runs; without it Update returns
// ErrNotFound and fn is never called.
type Store interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	Put(ctx context.Context, s *model.Session) error
	Update(ctx context.Context, id string, upsert bool, fn MutateFunc) (*model.Session, error)
	Close() error
}
