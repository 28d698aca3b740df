package pinterest

import (
	"context"
	"errors"
	"io"
	"testing"

	"pinpilot/application/boards"
	"pinpilot/domain/entities"
	"pinpilot/infrastructure/media"
	"pinpilot/infrastructure/sessions"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := sessions.NewFileStore(t.TempDir(), logger)
	return NewEngine(store, media.NewStager(logger), boards.NewResolver(nil, logger), logger, opts...)
}

func TestPublishWithoutLoginFailsBeforeNavigation(t *testing.T) {
	e := newTestEngine(t)

	err := e.Publish(context.Background(), "user1", entities.PinRequest{Title: "My Pin", Board: "Pets"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)

	var stageErr *entities.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, stageRestoringSession, stageErr.Stage)
}

func TestPublishCorruptArtifact(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.store.Save("user1", []byte("not json at all{{")))

	err := e.Publish(context.Background(), "user1", entities.PinRequest{Title: "My Pin"})
	require.Error(t, err)

	var stageErr *entities.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, stageRestoringSession, stageErr.Stage)
}

func TestPublishRejectsEmptyTitle(t *testing.T) {
	e := newTestEngine(t)

	err := e.Publish(context.Background(), "user1", entities.PinRequest{Board: "Pets"})
	assert.Error(t, err)
}

func TestLoginRequiresCredentials(t *testing.T) {
	e := newTestEngine(t)

	err := e.Login(context.Background(), "user1", entities.Credentials{Email: "a@b.c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrLoginFailed)
}

func TestLoginRejectsInvalidUserID(t *testing.T) {
	e := newTestEngine(t)

	err := e.Login(context.Background(), "../escape", entities.Credentials{Email: "a@b.c", Password: "pw"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrInvalidUserID)
}

func TestHasActiveSession(t *testing.T) {
	e := newTestEngine(t)

	active, modified := e.HasActiveSession("user1")
	assert.False(t, active)
	assert.True(t, modified.IsZero())

	require.NoError(t, e.store.Save("user1", []byte(`{"cookies":[]}`)))

	active, modified = e.HasActiveSession("user1")
	assert.True(t, active)
	assert.False(t, modified.IsZero())
}

func TestEngineOptions(t *testing.T) {
	e := newTestEngine(t,
		WithHeadless(true),
		WithSlowMo(50),
		WithBaseURL("http://localhost:8080/"),
	)

	assert.True(t, e.headless)
	assert.Equal(t, 50.0, e.slowMo)
	assert.Equal(t, "http://localhost:8080", e.baseURL)
}

func TestIsAuthRedirect(t *testing.T) {
	assert.True(t, isAuthRedirect("https://www.pinterest.com/login/"))
	assert.True(t, isAuthRedirect("https://www.pinterest.com/signup/?next=%2F"))
	assert.False(t, isAuthRedirect("https://www.pinterest.com/"))
	assert.False(t, isAuthRedirect("https://www.pinterest.com/pin-builder/"))
}

func TestTitleLocator(t *testing.T) {
	assert.Equal(t, `div[title="Home Decor"]`, titleLocator("Home Decor"))
	assert.Equal(t, `div[title="Say \"cheese\""]`, titleLocator(`Say "cheese"`))
}
