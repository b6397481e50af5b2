package kiosk

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewSessionID returns a random UUID, or a base-36 token if the system's
// randomness source is unavailable.
func NewSessionID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackSessionID()
	}
	return id.String()
}

func fallbackSessionID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36) + strconv.FormatUint(rand.Uint64(), 36)
}
