package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"pinpilot/domain/entities"
	"pinpilot/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const defaultSessionDir = "sessions/pinterest"

// userIDPattern keeps ids usable as bare filenames. Anything else could
// escape the store's directory.
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

type fileStore struct {
	dir    string
	logger *logrus.Logger
}

// NewFileStore - creates a filesystem-backed session store rooted at dir
func NewFileStore(dir string, logger *logrus.Logger) interfaces.SessionStore {
	if dir == "" {
		dir = defaultSessionDir
	}
	return &fileStore{dir: dir, logger: logger}
}

func validateUserID(userID string) error {
	if userID == "" || userID == "." || userID == ".." || !userIDPattern.MatchString(userID) {
		return fmt.Errorf("%w: %q", entities.ErrInvalidUserID, userID)
	}
	return nil
}

// Path - deterministic artifact location, derived only from the user id
func (s *fileStore) Path(userID string) (string, error) {
	if err := validateUserID(userID); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, userID+".json"), nil
}

// Exists - true iff a readable artifact is present for the user
func (s *fileStore) Exists(userID string) bool {
	path, err := s.Path(userID)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Load - reads the artifact for the user
func (s *fileStore) Load(userID string) ([]byte, error) {
	path, err := s.Path(userID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w for user %s", entities.ErrSessionNotFound, userID)
		}
		return nil, fmt.Errorf("failed to read session artifact: %w", err)
	}
	return data, nil
}

// Save - atomically overwrites the artifact, creating the directory if needed.
// The blob contains cookie bearer material, so files are 0600.
func (s *fileStore) Save(userID string, state []byte) error {
	path, err := s.Path(userID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, userID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(state); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session artifact: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set session artifact permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp session file: %w", err)
	}

	// Rename is the commit point. A crash before this leaves only a temp
	// file Exists will never report.
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to commit session artifact: %w", err)
	}

	s.logger.WithField("user", userID).Info("Session artifact saved")
	return nil
}

// Delete - removes the artifact; absent artifacts are not an error
func (s *fileStore) Delete(userID string) error {
	path, err := s.Path(userID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session artifact: %w", err)
	}
	return nil
}

// Info - artifact metadata, if one is present
func (s *fileStore) Info(userID string) (entities.SessionInfo, bool) {
	path, err := s.Path(userID)
	if err != nil {
		return entities.SessionInfo{}, false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return entities.SessionInfo{}, false
	}
	return entities.SessionInfo{UserID: userID, ModifiedAt: info.ModTime()}, true
}
