package interfaces

import "context"

// BoardMatcher is an external text-matching capability that picks the
// candidate board a target name semantically belongs to. It returns "" when
// no candidate fits. Its answer is untrusted: callers must verify the
// returned value is byte-identical to a candidate before acting on it.
type BoardMatcher interface {
	Match(ctx context.Context, target string, candidates []string) (string, error)
}
