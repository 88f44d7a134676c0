package domain

import "strconv"

// Display fills. The renderer consumes these verbatim; the engine only
// guarantees they stay consistent with Revealed / completion state.
const (
	FillRevealed   = "#cfd8dc"
	FillHidden     = "#ffffff"
	FillComplete   = "#a5d6a7"
	FillIncomplete = "#eceff1"
)

// Coord identifies a cell on the abstract grid. Piece coords are offset
// by NumShapes on both axes; hint coords sit in the reserved band below
// that offset.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Key is the stable stringified form of a coordinate, used as the
// lookup identifier for pieces and hints. It is derived, never stored
// independently of the coordinate it names.
func (c Coord) Key() string {
	return strconv.Itoa(c.Col) + "," + strconv.Itoa(c.Row)
}

// Piece is one cell of the puzzle proper. Value and Revealed are fixed
// at generation time; SelectedValue is the only user-mutable field.
type Piece struct {
	Key           string `json:"key"`
	Coord         Coord  `json:"coord"`
	Value         Shape  `json:"value"`
	Revealed      bool   `json:"revealed"`
	SelectedValue Shape  `json:"selectedValue"`
	Fill          string `json:"fill"`
}

// PieceFill derives the display fill for a piece from its revealed
// state.
func PieceFill(revealed bool) string {
	if revealed {
		return FillRevealed
	}
	return FillHidden
}

// Hint is one hint cell: the count of Shape along one row or column.
// Content is always the ground-truth count; Fill signals completion
// only when assist mode is active.
type Hint struct {
	Key     string `json:"key"`
	Coord   Coord  `json:"coord"`
	Shape   Shape  `json:"shape"`
	Content int    `json:"content"`
	Fill    string `json:"fill"`
}

// Puzzle is a full puzzle session: grid dimensions, policy flags, and
// the current piece and hint collections. It is also the persisted
// form.
type Puzzle struct {
	ID             string  `json:"id,omitempty"`
	Seed           int64   `json:"seed,omitempty"`
	Columns        int     `json:"columns"`
	Rows           int     `json:"rows"`
	Assist         bool    `json:"assist"`
	RevealedLocked bool    `json:"revealedLocked"`
	Pieces         []Piece `json:"pieces"`
	Hints          []Hint  `json:"hints"`
	CreatedAt      int64   `json:"createdAt,omitempty"`
	// Optional user metadata
	Name string `json:"name,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Columns   int    `json:"columns"`
	Rows      int    `json:"rows"`
	CreatedAt int64  `json:"createdAt"`
}
