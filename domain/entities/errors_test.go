package entities

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageErrorUnwrap(t *testing.T) {
	err := NewStageError("verifying_session_live", fmt.Errorf("navigation: %w", ErrSessionExpired))

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Contains(t, err.Error(), "verifying_session_live")

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, "verifying_session_live", stageErr.Stage)
}

func TestPinRequestValidate(t *testing.T) {
	assert.Error(t, PinRequest{}.Validate())
	assert.Error(t, PinRequest{Board: "Pets"}.Validate())
	assert.NoError(t, PinRequest{Title: "A pin"}.Validate())
	assert.NoError(t, PinRequest{Title: "A pin", Board: "Pets", ImageRef: "https://cdn/img.jpg"}.Validate())
}
