package tally

import (
	"svw.info/picross/internal/domain"
)

// onLine reports whether p sits on the given line.
func onLine(p *domain.Piece, axis domain.Axis, coord int) bool {
	if axis == domain.Row {
		return p.Coord.Row == coord
	}
	return p.Coord.Col == coord
}

// Count returns the number of pieces on the given line whose
// ground-truth value equals shape.
func Count(pieces []domain.Piece, axis domain.Axis, coord int, shape domain.Shape) int {
	n := 0
	for i := range pieces {
		if onLine(&pieces[i], axis, coord) && pieces[i].Value == shape {
			n++
		}
	}
	return n
}

// CountSelected is Count over the user's current selections instead of
// the ground truth. Used to detect per-line completion in assist mode.
func CountSelected(pieces []domain.Piece, axis domain.Axis, coord int, shape domain.Shape) int {
	n := 0
	for i := range pieces {
		if onLine(&pieces[i], axis, coord) && pieces[i].SelectedValue == shape {
			n++
		}
	}
	return n
}
