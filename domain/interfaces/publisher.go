package interfaces

import (
	"context"
	"time"

	"pinpilot/domain/entities"
)

// Publisher drives an authenticated browser session against Pinterest to
// log in and create pins.
type Publisher interface {
	// Login authenticates the user and persists the resulting browser
	// session. The wait for the post-login redirect is unbounded so manual
	// 2FA can complete; callers needing a hard bound impose their own.
	Login(ctx context.Context, userID string, creds entities.Credentials) error

	// Publish creates one pin using the user's persisted session.
	Publish(ctx context.Context, userID string, pin entities.PinRequest) error

	// HasActiveSession reports whether a session artifact exists and when it
	// was last written. Liveness against the site is only checked by Publish.
	HasActiveSession(userID string) (bool, time.Time)
}
