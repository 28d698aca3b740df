package interfaces

import "pinpilot/domain/entities"

// CredentialProvider supplies plaintext-ready Pinterest credentials for a
// user. Decryption of stored secrets happens before this boundary.
type CredentialProvider interface {
	Credentials(userID string) (entities.Credentials, error)
}
