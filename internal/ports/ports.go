package ports

import (
	"context"
	"time"

	"svw.info/picross/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Pieces   int
	Duration time.Duration
}

// Generator creates the piece grid for a new puzzle.
type Generator interface {
	Generate(ctx context.Context, seed int64, columns, rows int) ([]domain.Piece, Stats, error)
}

// Tallier computes per-line shape counts and emits hint cells.
type Tallier interface {
	Hints(ctx context.Context, pieces []domain.Piece, columns, rows int, assist bool) ([]domain.Hint, error)
}

// Rules applies the interaction policy: selection cycling, validity,
// reset. Implementations must return fresh collections, never mutate
// their inputs.
type Rules interface {
	Cycle(p domain.Piece) domain.Piece
	Valid(pieces []domain.Piece) bool
	Reset(pieces []domain.Piece) []domain.Piece
}

// RulesFactory builds a rule engine for one puzzle's policy flags.
type RulesFactory func(assistEnabled, revealedLocked bool) Rules

// Storage persists and retrieves puzzles as JSON.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
