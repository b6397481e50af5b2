package model

import "time"

// Session is the rendezvous record shared by the kiosk and the phone app.
type Session struct {
	ID              string    `gorm:"primaryKey;size:128" json:"sessionId"`
	Scanned         bool      `gorm:"not null" json:"scanned"`
	HandoffComplete bool      `gorm:"not null" json:"handoffComplete"`
	Amount          *float64  `json:"amount"`
	AppReady        bool      `gorm:"not null" json:"appReady"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewSession returns a session with every flag cleared.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// Status is the polled view of a session.
type Status struct {
	Scanned         bool     `json:"scanned"`
	HandoffComplete bool     `json:"handoffComplete"`
	Amount          *float64 `json:"amount"`
	AppReady        bool     `json:"appReady"`
}

// Status projects the session onto its polled view.
func (s *Session) Status() Status {
	if s == nil {
		return Status{}
	}
	return Status{
		Scanned:         s.Scanned,
		HandoffComplete: s.HandoffComplete,
		Amount:          s.Amount,
		AppReady:        s.AppReady,
	}
}

// Clone returns a deep copy so callers never share the Amount pointer.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Amount != nil {
		a := *s.Amount
		c.Amount = &a
	}
	return &c
}
