package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jask/pinpad/internal/database"
	"github.com/jask/pinpad/internal/database/repository"
	"github.com/jask/pinpad/internal/pin"
)

// AttemptStore is the persistence the attempt service needs.
type AttemptStore interface {
	Insert(ctx context.Context, a repository.Attempt) error
	List(ctx context.Context, limit int) ([]repository.Attempt, error)
	Summary(ctx context.Context) (repository.Summary, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Attempts verifies submitted codes and keeps a history of the outcomes.
type Attempts struct {
	Repo     AttemptStore
	Verifier pin.Verifier
	Log      *slog.Logger
	// Now defaults to database.Now.
	Now func() time.Time
}

func (s *Attempts) logger() *slog.Logger {
	if s.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Log
}

func (s *Attempts) now() time.Time {
	if s.Now == nil {
		return database.Now()
	}
	return s.Now()
}

// Submit checks code and records the attempt. The returned error is the
// verification result; a failure to record is logged and does not change it.
func (s *Attempts) Submit(ctx context.Context, code *pin.Code, src pin.Source) (repository.Attempt, error) {
	if s.Verifier == nil {
		return repository.Attempt{}, fmt.Errorf("attempts: verifier not configured")
	}
	if !src.Valid() {
		src = pin.SourceTyped
	}
	verr := pin.Check(s.Verifier, code)
	a := repository.Attempt{
		ID:        uuid.NewString(),
		Outcome:   OutcomeOf(verr),
		Digits:    code.Filled(),
		Source:    string(src),
		CreatedAt: s.now(),
	}
	log := s.logger().With("attempt", a.ID, "outcome", a.Outcome, "digits", a.Digits, "source", a.Source)
	if s.Repo != nil {
		if err := s.Repo.Insert(ctx, a); err != nil {
			log.Warn("record attempt failed", "err", err)
		}
	}
	switch a.Outcome {
	case repository.OutcomeAccepted:
		log.Info("pin accepted")
	case repository.OutcomeFailed:
		log.Error("pin check failed", "err", verr)
	default:
		log.Info("pin rejected")
	}
	return a, verr
}

// OutcomeOf maps a verification result to the stored outcome.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return repository.OutcomeAccepted
	case errors.Is(err, pin.ErrIncomplete):
		return repository.OutcomeIncomplete
	case errors.Is(err, pin.ErrIncorrect):
		return repository.OutcomeIncorrect
	default:
		return repository.OutcomeFailed
	}
}

func (s *Attempts) Recent(ctx context.Context, n int) ([]repository.Attempt, error) {
	if s.Repo == nil {
		return nil, nil
	}
	out, err := s.Repo.List(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return out, nil
}

func (s *Attempts) Summary(ctx context.Context) (repository.Summary, error) {
	if s.Repo == nil {
		return repository.Summary{ByKind: map[string]int{}}, nil
	}
	sum, err := s.Repo.Summary(ctx)
	if err != nil {
		return sum, fmt.Errorf("summarize attempts: %w", err)
	}
	return sum, nil
}

// Clear wipes the attempt history.
func (s *Attempts) Clear(ctx context.Context) (int64, error) {
	if s.Repo == nil {
		return 0, nil
	}
	n, err := s.Repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear attempts: %w", err)
	}
	s.logger().Info("attempt history cleared", "removed", n)
	return n, nil
}
