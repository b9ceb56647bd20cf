// Package testdata fills an attempt history with sample rows for demos and tests.
package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/pinpad/internal/database/repository"
	"github.com/jask/pinpad/internal/pin"
)

// Inserter is the part of the attempt repository Seed writes through.
type Inserter interface {
	Insert(ctx context.Context, a repository.Attempt) error
}

// Seed inserts n attempts spread over the ten days before now. The same seed
// always produces the same outcomes and sources; IDs are random.
func Seed(ctx context.Context, repo Inserter, n, length int, seed int64, now time.Time) ([]repository.Attempt, error) {
	if length < 1 || length > pin.MaxLength {
		return nil, fmt.Errorf("seed: length %d outside 1..%d", length, pin.MaxLength)
	}
	if n < 0 {
		return nil, fmt.Errorf("seed: negative count %d", n)
	}
	rng := rand.New(rand.NewSource(seed))
	sources := []pin.Source{pin.SourceTyped, pin.SourceTyped, pin.SourcePasted, pin.SourceKeypad}

	out := make([]repository.Attempt, 0, n)
	for i := 0; i < n; i++ {
		a := repository.Attempt{
			ID:        uuid.NewString(),
			Outcome:   repository.OutcomeIncorrect,
			Digits:    length,
			Source:    string(sources[rng.Intn(len(sources))]),
			CreatedAt: now.Add(-time.Duration(rng.Intn(10*24*60)) * time.Minute).UTC(),
		}
		switch roll := rng.Intn(10); {
		case roll < 4:
			a.Outcome = repository.OutcomeAccepted
		case roll < 6:
			a.Outcome = repository.OutcomeIncomplete
			a.Digits = rng.Intn(length)
		}
		if err := repo.Insert(ctx, a); err != nil {
			return out, fmt.Errorf("seed attempt %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}
