package entities

import (
	"errors"
	"fmt"
)

// Failure taxonomy for login and publish flows. Sentinels are matched with
// errors.Is; StageError carries which stage of a flow produced them.
var (
	// ErrSessionNotFound - no prior login for this user
	ErrSessionNotFound = errors.New("pinterest session not found")

	// ErrSessionExpired - artifact present but the site redirected to login
	ErrSessionExpired = errors.New("pinterest session expired")

	// ErrCredentialsRejected - the login form refused the credentials
	ErrCredentialsRejected = errors.New("pinterest credentials rejected")

	// ErrLoginFailed - login flow failed before a session could be saved
	ErrLoginFailed = errors.New("pinterest login failed")

	// ErrElementNotFound - no locator variant matched within its timeout
	ErrElementNotFound = errors.New("element not found")

	// ErrSelectorTimeout - a single bounded wait expired
	ErrSelectorTimeout = errors.New("selector wait timed out")

	// ErrMediaStaging - image could not be prepared; publish continues without it
	ErrMediaStaging = errors.New("media staging failed")

	// ErrBoardMatchAmbiguous - semantic match returned a non-member value
	ErrBoardMatchAmbiguous = errors.New("semantic match returned a board not in the candidate list")

	// ErrNetworkTimeout - page navigation or content load timed out
	ErrNetworkTimeout = errors.New("page navigation timed out")

	// ErrInvalidUserID - user id is empty or not a plain opaque identifier
	ErrInvalidUserID = errors.New("invalid user id")
)

// StageError attributes a failure to a named stage of a login or publish
// flow so callers can tell a session expiry from a missing element from a
// navigation timeout.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError - wraps err with the stage it occurred in
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
