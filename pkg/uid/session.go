package uid

import (
	"github.com/google/uuid"
)

// GenerateSessionID returns a random id for a game session
func GenerateSessionID() string {
	return uuid.NewString()
}

// IsSessionID reports whether s looks like an id from GenerateSessionID.
func IsSessionID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
