package generator

import (
	"context"
	"math/rand"
	"time"

	"svw.info/picross/internal/domain"
	"svw.info/picross/internal/ports"
)

// Generate builds the piece grid for a columns x rows puzzle from the
// given seed. Pieces come out in row-major order; piece coordinates
// are offset by the hint band on both axes. Non-positive dimensions
// yield an empty grid rather than an error so the rendering layer
// always has a well-formed (if empty) state to draw.
func (g *RandomGenerator) Generate(ctx context.Context, seed int64, columns, rows int) ([]domain.Piece, ports.Stats, error) {
	start := time.Now()
	if columns < 1 || rows < 1 {
		return []domain.Piece{}, ports.Stats{Duration: time.Since(start)}, nil
	}
	if ctx.Err() != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, ctx.Err()
	}

	rng := rand.New(rand.NewSource(seed))
	pieces := make([]domain.Piece, 0, columns*rows)
	for i := 0; i < columns*rows; i++ {
		coord := domain.Coord{
			Col: i%columns + domain.NumShapes,
			Row: i/columns + domain.NumShapes,
		}
		value := domain.Shapes[rng.Intn(domain.NumShapes)]
		revealed := rng.Float64() > g.RevealProbability

		selected := domain.ShapeNone
		if revealed {
			selected = value
		}
		pieces = append(pieces, domain.Piece{
			Key:           coord.Key(),
			Coord:         coord,
			Value:         value,
			Revealed:      revealed,
			SelectedValue: selected,
			Fill:          domain.PieceFill(revealed),
		})
	}
	return pieces, ports.Stats{Pieces: len(pieces), Duration: time.Since(start)}, nil
}
