// Package ledger enforces the submission contract over the score store.
//
// The ledger owns upsert semantics: one entry per (team, post, judge)
// key, replaced wholesale on resubmission. Validation and authorization
// happen here, before the store is touched; the store itself only
// guarantees atomic replace-by-key.
package ledger

import (
	"context"
	"fmt"

	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/pkg/logger"
	"github.com/okian/langkah/pkg/metrics"
)

// DefaultRovingMaxScore caps each criterion value a roving judge may submit.
const DefaultRovingMaxScore = 5

// Store is the ledger's view of the underlying score store.
type Store interface {
	Upsert(ctx context.Context, e model.ScoreEntry) (bool, error)
	Reset(ctx context.Context) error
	Snapshot(ctx context.Context) []model.ScoreEntry
	Len(ctx context.Context) int
}

// Ledger validates and authorizes submissions before they reach the store.
type Ledger struct {
	store     Store
	rovingMax int
	logger    logger.Logger
}

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithRovingMaxScore overrides the per-criterion cap for roving judges.
func WithRovingMaxScore(max int) Option {
	return func(l *Ledger) {
		if max > 0 {
			l.rovingMax = max
		}
	}
}

// WithLogger sets a custom logger for the ledger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Ledger) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// New creates a Ledger over the given store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		rovingMax: DefaultRovingMaxScore,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Upsert validates the entry, checks the submitter may write it, and
// replaces the stored entry under its natural key. Returns true when an
// existing entry was replaced. Submitting {c1:80} over a stored
// {c1:70,c2:90} discards c2; callers resupply the full map each time.
func (l *Ledger) Upsert(ctx context.Context, submitter model.User, e model.ScoreEntry) (bool, error) {
	if err := validateEntry(e); err != nil {
		metrics.RecordScoreRejection("validation")
		return false, err
	}

	switch {
	case submitter.IsAdmin():
		// Admins may submit on behalf of any judge.
	case submitter.IsJudge():
		if submitter.ID != e.JudgeID {
			metrics.RecordScoreRejection("unauthorized")
			return false, fmt.Errorf("%w: judge %s cannot submit for judge %s", ErrUnauthorized, submitter.ID, e.JudgeID)
		}
	default:
		metrics.RecordScoreRejection("unauthorized")
		return false, fmt.Errorf("%w: role %s cannot submit scores", ErrUnauthorized, submitter.Role)
	}

	if submitter.RovingJudge {
		for criterionID, value := range e.Scores {
			if value > l.rovingMax {
				metrics.RecordScoreRejection("validation")
				return false, fmt.Errorf("%w: criterion %s exceeds roving judge cap of %d", ErrValidation, criterionID, l.rovingMax)
			}
		}
	}

	replaced, err := l.store.Upsert(ctx, e)
	if err != nil {
		return false, fmt.Errorf("ledger upsert: %w", err)
	}

	metrics.RecordScoreSubmission()
	if replaced {
		metrics.RecordScoreReplacement()
	}
	if l.logger != nil {
		l.logger.Debug(ctx, "score entry stored",
			logger.String("teamId", e.TeamID),
			logger.String("postId", e.PostID),
			logger.String("judgeId", e.JudgeID),
			logger.Bool("replaced", replaced),
		)
	}
	return replaced, nil
}

// Reset deletes every ledger entry. Administrator only; irreversible.
func (l *Ledger) Reset(ctx context.Context, submitter model.User) error {
	if !submitter.IsAdmin() {
		return fmt.Errorf("%w: only administrators may reset the ledger", ErrUnauthorized)
	}
	if err := l.store.Reset(ctx); err != nil {
		return fmt.Errorf("ledger reset: %w", err)
	}

	metrics.RecordLedgerReset()
	if l.logger != nil {
		l.logger.Info(ctx, "ledger reset", logger.String("by", submitter.ID))
	}
	return nil
}

// Snapshot returns the current entries in deterministic order.
func (l *Ledger) Snapshot(ctx context.Context) []model.ScoreEntry {
	return l.store.Snapshot(ctx)
}

// Len returns the number of entries in the ledger.
func (l *Ledger) Len(ctx context.Context) int {
	return l.store.Len(ctx)
}

func validateEntry(e model.ScoreEntry) error {
	switch {
	case e.TeamID == "":
		return fmt.Errorf("%w: teamId is required", ErrValidation)
	case e.PostID == "":
		return fmt.Errorf("%w: postId is required", ErrValidation)
	case e.JudgeID == "":
		return fmt.Errorf("%w: judgeId is required", ErrValidation)
	}
	return nil
}
