package model

// SessionEventKind names a handoff mutation.
type SessionEventKind string

const (
	EventRegistered      SessionEventKind = "registered"
	EventScanned         SessionEventKind = "scanned"
	EventAppReady        SessionEventKind = "app_ready"
	EventHandoffComplete SessionEventKind = "handoff_complete"
)

// SessionEvent is emitted after a successful handoff mutation.
type SessionEvent struct {
	SessionID string           `json:"sessionId"`
	Kind      SessionEventKind `json:"event"`
	Status    Status           `json:"status"`
}
