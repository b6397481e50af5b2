// Package handoff implements the session rendezvous between the kiosk and the phone app.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"log"

	"pos-kiosk-demo/internal/model"
	"pos-kiosk-demo/internal/store"
)

var (
	// ErrSessionNotFound is returned when an operation needs a registered session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrMissingSessionID is returned when the session ID is empty.
	ErrMissingSessionID = errors.New("sessionId is required")
)

// Notifier receives an event after every successful mutation.
type Notifier interface {
	Dispatch(ev model.SessionEvent) bool
}

// Service holds per-session handoff state on top of a store.
type Service struct {
	store    store.Store
	notifier Notifier
}

// NewService creates a handoff service. notifier may be nil.
func NewService(s store.Store, notifier Notifier) *Service {
	return &Service{store: s, notifier: notifier}
}

// Register creates or overwrites a session with every flag cleared and the given amount.
func (s *Service) Register(ctx context.Context, sessionID string, amount float64) (*model.Session, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	session := model.NewSession(sessionID)
	session.Amount = &amount
	if err := s.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}
	s.emit(model.EventRegistered, session)
	return session, nil
}

// MarkScanned sets scanned=true, creating the session if needed. It is idempotent.
func (s *Service) MarkScanned(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.mutate(ctx, sessionID, true, model.EventScanned, func(sess *model.Session) {
		sess.Scanned = true
	})
}

// MarkAppReady sets appReady=true on an existing session.
func (s *Service) MarkAppReady(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.mutate(ctx, sessionID, false, model.EventAppReady, func(sess *model.Session) {
		sess.AppReady = true
	})
}

// MarkHandoffComplete sets handoffComplete=true, creating the session if needed.
func (s *Service) MarkHandoffComplete(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.mutate(ctx, sessionID, true, model.EventHandoffComplete, func(sess *model.Session) {
		sess.HandoffComplete = true
	})
}

// Status returns the polled view of a session. Unknown sessions report all defaults.
func (s *Service) Status(ctx context.Context, sessionID string) (model.Status, error) {
	session, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return model.Status{}, nil
	}
	if err != nil {
		return model.Status{}, fmt.Errorf("load session status: %w", err)
	}
	return session.Status(), nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, upsert bool, kind model.SessionEventKind, fn store.MutateFunc) (*model.Session, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, err := s.store.Update(ctx, sessionID, upsert, fn)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	s.emit(kind, session)
	return session, nil
}

func (s *Service) emit(kind model.SessionEventKind, session *model.Session) {
	log.Printf("session %s: %s", session.ID, kind)
	if s.notifier == nil {
		return
	}
	s.notifier.Dispatch(model.SessionEvent{
		SessionID: session.ID,
		Kind:      kind,
		Status:    session.Status(),
	})
}
