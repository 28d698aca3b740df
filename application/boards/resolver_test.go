package boards

import (
	"context"
	"errors"
	"io"
	"testing"

	"pinpilot/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMatcher struct {
	answer string
	err    error
	calls  int
}

func (m *stubMatcher) Match(ctx context.Context, target string, candidates []string) (string, error) {
	m.calls++
	return m.answer, m.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestResolveExactMatchKeepsCandidateCasing(t *testing.T) {
	matcher := &stubMatcher{}
	r := NewResolver(matcher, testLogger())

	decision := r.Resolve(context.Background(), "home decor", []string{"Home Decor", "Pets"})

	assert.Equal(t, entities.MatchReuse, decision.Kind)
	assert.Equal(t, "Home Decor", decision.Board)
	assert.Zero(t, matcher.calls, "exact match must not invoke the semantic matcher")
}

func TestResolveEmptyCandidatesSkipsMatcher(t *testing.T) {
	matcher := &stubMatcher{answer: "anything"}
	r := NewResolver(matcher, testLogger())

	decision := r.Resolve(context.Background(), "Recipes", nil)

	assert.Equal(t, entities.CreateBoard("Recipes"), decision)
	assert.Zero(t, matcher.calls)
}

func TestResolveSemanticMatchMember(t *testing.T) {
	matcher := &stubMatcher{answer: "Pets"}
	r := NewResolver(matcher, testLogger())

	decision := r.Resolve(context.Background(), "Cat Pics", []string{"Home Decor", "Pets"})

	require.Equal(t, entities.MatchReuse, decision.Kind)
	assert.Equal(t, "Pets", decision.Board)
	assert.Equal(t, 1, matcher.calls)
}

func TestResolveNonMemberAnswerFallsToCreate(t *testing.T) {
	// A paraphrased or invented answer must never be trusted as a board
	// identity.
	matcher := &stubMatcher{answer: "pets"}
	r := NewResolver(matcher, testLogger())

	decision := r.Resolve(context.Background(), "Cat Pics", []string{"Home Decor", "Pets"})

	assert.Equal(t, entities.CreateBoard("Cat Pics"), decision)
}

func TestResolveNoMatchAnswerFallsToCreate(t *testing.T) {
	matcher := &stubMatcher{answer: ""}
	r := NewResolver(matcher, testLogger())

	decision := r.Resolve(context.Background(), "Recipes", []string{"Pets"})

	assert.Equal(t, entities.CreateBoard("Recipes"), decision)
}

func TestResolveMatcherErrorFallsToCreate(t *testing.T) {
	matcher := &stubMatcher{err: errors.New("rate limited")}
	r := NewResolver(matcher, testLogger())

	decision := r.Resolve(context.Background(), "Recipes", []string{"Pets"})

	assert.Equal(t, entities.CreateBoard("Recipes"), decision)
}

func TestResolveNilMatcher(t *testing.T) {
	r := NewResolver(nil, testLogger())

	decision := r.Resolve(context.Background(), "Recipes", []string{"Pets"})

	assert.Equal(t, entities.CreateBoard("Recipes"), decision)
}
