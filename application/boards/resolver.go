package boards

import (
	"context"
	"strings"

	"pinpilot/domain/entities"
	"pinpilot/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Resolver decides which board a pin lands in. Exact matches are free and
// unambiguous, semantic matching is costly and probabilistic, and creating a
// board is the fallback that never misfiles a pin — so the tiers run in that
// strict order, short-circuiting on the first hit.
type Resolver struct {
	matcher interfaces.BoardMatcher
	logger  *logrus.Logger
}

// NewResolver - creates a resolver; matcher may be nil to disable the
// semantic tier entirely
func NewResolver(matcher interfaces.BoardMatcher, logger *logrus.Logger) *Resolver {
	return &Resolver{matcher: matcher, logger: logger}
}

// Resolve - maps the target board name onto the candidates scraped from the
// UI, producing exactly one decision
func (r *Resolver) Resolve(ctx context.Context, target string, candidates []string) entities.MatchDecision {
	if len(candidates) == 0 {
		return entities.CreateBoard(target)
	}

	for _, candidate := range candidates {
		if strings.EqualFold(candidate, target) {
			r.logger.WithField("board", candidate).Info("Exact board match")
			return entities.ReuseBoard(candidate)
		}
	}

	if r.matcher != nil {
		match, err := r.matcher.Match(ctx, target, candidates)
		switch {
		case err != nil:
			r.logger.WithError(err).Warn("Semantic board match failed, falling through to create")
		case match != "":
			// The matcher is untrusted: only a byte-identical candidate
			// counts, anything else is treated as no match.
			for _, candidate := range candidates {
				if candidate == match {
					r.logger.WithField("board", candidate).Info("Semantic board match")
					return entities.ReuseBoard(candidate)
				}
			}
			r.logger.WithFields(logrus.Fields{
				"target": target,
				"answer": match,
			}).Warn(entities.ErrBoardMatchAmbiguous.Error())
		}
	}

	return entities.CreateBoard(target)
}
