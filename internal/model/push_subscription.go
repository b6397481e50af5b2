package model

import "time"

// PushSubscription holds the information for a browser push subscription
// attached to one handoff session.
type PushSubscription struct {
	SessionID string    `json:"sessionId"`
	Endpoint  string    `json:"endpoint"`
	P256DH    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"createdAt"`
}
