package interfaces

import (
	"context"

	"pinpilot/domain/entities"
)

// BoardResolver decides whether a desired board name maps onto one of the
// boards currently visible in the UI or requires creating a new board.
// Exactly one decision is produced per publish attempt.
type BoardResolver interface {
	Resolve(ctx context.Context, target string, candidates []string) entities.MatchDecision
}
