package entities

import "time"

// SessionInfo describes a persisted browser-session artifact for a user.
type SessionInfo struct {
	UserID     string    `json:"userId"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// Credentials carry a user's Pinterest login. The secret arrives already
// decrypted; this layer never handles encryption.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"-"`
}
