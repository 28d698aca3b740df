package interfaces

import "pinpilot/domain/entities"

// SessionStore persists one opaque browser-session artifact per user. The
// artifact is a blob to this layer; only the browser automation knows its
// shape. Implementations must reject user ids that could escape the store's
// namespace.
type SessionStore interface {
	// Exists reports whether a readable artifact is present for the user
	Exists(userID string) bool

	// Path returns the deterministic artifact location for the user
	Path(userID string) (string, error)

	// Load reads the artifact, failing with entities.ErrSessionNotFound if absent
	Load(userID string) ([]byte, error)

	// Save atomically overwrites the artifact, creating the directory if needed
	Save(userID string, state []byte) error

	// Delete removes the artifact; absent artifacts are not an error
	Delete(userID string) error

	// Info returns the artifact's metadata if one is present
	Info(userID string) (entities.SessionInfo, bool)
}
