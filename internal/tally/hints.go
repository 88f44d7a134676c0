package tally

import (
	"context"

	"svw.info/picross/internal/domain"
)

// Engine implements the Tallier port.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Hints emits one hint per (shape, line) pair on both axes: column
// hints first, then row hints. A hint for shape index i counting
// column c sits at (c, i); one counting row r sits at (i, r), so the
// hint band never collides with the piece band.
//
// Content is always the ground-truth count. Fill marks completion only
// when assist is on and the selected count matches the truth; with
// assist off every hint renders incomplete, which is the intended
// policy rather than a display defect.
func (e *Engine) Hints(ctx context.Context, pieces []domain.Piece, columns, rows int, assist bool) ([]domain.Hint, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	hints := make([]domain.Hint, 0, domain.NumShapes*(columns+rows))
	for i, s := range domain.Shapes {
		for c := domain.NumShapes; c < domain.NumShapes+columns; c++ {
			coord := domain.Coord{Col: c, Row: i}
			hints = append(hints, domain.Hint{
				Key:     coord.Key(),
				Coord:   coord,
				Shape:   s,
				Content: Count(pieces, domain.Column, c, s),
				Fill:    hintFill(pieces, domain.Column, c, s, assist),
			})
		}
	}
	for i, s := range domain.Shapes {
		for r := domain.NumShapes; r < domain.NumShapes+rows; r++ {
			coord := domain.Coord{Col: i, Row: r}
			hints = append(hints, domain.Hint{
				Key:     coord.Key(),
				Coord:   coord,
				Shape:   s,
				Content: Count(pieces, domain.Row, r, s),
				Fill:    hintFill(pieces, domain.Row, r, s, assist),
			})
		}
	}
	return hints, nil
}

func hintFill(pieces []domain.Piece, axis domain.Axis, coord int, s domain.Shape, assist bool) string {
	if assist && Count(pieces, axis, coord, s) == CountSelected(pieces, axis, coord, s) {
		return domain.FillComplete
	}
	return domain.FillIncomplete
}
