package rules

import (
	"svw.info/picross/internal/domain"
)

// Config holds the two policy flags the variants differ on.
type Config struct {
	// AssistEnabled colors completed hint lines. Off by default;
	// hints then always render incomplete.
	AssistEnabled bool
	// RevealedLocked makes clicking a revealed piece a no-op. When
	// false, revealed pieces cycle like any other.
	RevealedLocked bool
}

// Engine implements the Rules port for one policy configuration.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine { return &Engine{cfg: cfg} }

// Cycle advances the piece's selection to the next value in the cycle
// none -> circle -> square -> triangle -> none. Revealed pieces are
// untouched under the locked policy.
func (e *Engine) Cycle(p domain.Piece) domain.Piece {
	if p.Revealed && e.cfg.RevealedLocked {
		return p
	}
	p.SelectedValue = domain.NextShape(p.SelectedValue)
	return p
}

// Valid reports whether every piece's selection matches its
// ground-truth value.
func (e *Engine) Valid(pieces []domain.Piece) bool {
	for i := range pieces {
		if pieces[i].SelectedValue != pieces[i].Value {
			return false
		}
	}
	return true
}

// Reset clears the selection of every non-revealed piece. The input is
// left untouched; a fresh slice comes back so observers comparing
// references see an atomic replacement.
func (e *Engine) Reset(pieces []domain.Piece) []domain.Piece {
	out := make([]domain.Piece, len(pieces))
	copy(out, pieces)
	for i := range out {
		if !out[i].Revealed {
			out[i].SelectedValue = domain.ShapeNone
		}
	}
	return out
}
