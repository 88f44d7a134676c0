package domain

// Shape is one of the fixed piece shapes. ShapeNone is the empty
// (unselected) state and is never assigned as a piece value.
type Shape int

const (
	ShapeNone Shape = iota
	Circle
	Square
	Triangle
)

// Shapes is the fixed process-wide shape order. Hint cells occupy one
// leading row/column per entry, so the puzzle band starts at NumShapes.
var Shapes = [...]Shape{Circle, Square, Triangle}

// NumShapes is the size of the reserved hint band on each axis.
const NumShapes = len(Shapes)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	default:
		return "none"
	}
}

// NextShape advances through the selection cycle
// none -> circle -> square -> triangle -> none.
func NextShape(s Shape) Shape {
	if int(s) >= NumShapes {
		return ShapeNone
	}
	return s + 1
}

// Axis selects the tally direction over a line of pieces.
type Axis int

const (
	Column Axis = iota
	Row
)

func (a Axis) String() string {
	if a == Row {
		return "row"
	}
	return "column"
}
