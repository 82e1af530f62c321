package flatqa

// Shape identifies one of the drawable shape kinds.
// The declaration order of Shapes is semantically significant: it fixes
// vocabulary indices and is what the diagonal split pairs against colors.
type Shape string

// All supported shapes, in canonical order.
const (
	ShapeSquare        Shape = "square"
	ShapeTriangle      Shape = "triangle"
	ShapeCircle        Shape = "circle"
	ShapeCross         Shape = "cross"
	ShapeEmptySquare   Shape = "empty_square"
	ShapeEmptyTriangle Shape = "empty_triangle"
	ShapeBar           Shape = "bar"
)

// Shapes is the full ordered shape universe. A run uses a prefix of it.
var Shapes = []Shape{
	ShapeSquare,
	ShapeTriangle,
	ShapeCircle,
	ShapeCross,
	ShapeEmptySquare,
	ShapeEmptyTriangle,
	ShapeBar,
}

var shapeIndex = func() map[Shape]int {
	m := make(map[Shape]int, len(Shapes))
	for i, s := range Shapes {
		m[s] = i
	}
	return m
}()

// ShapeIndex returns the position of s in the canonical shape order,
// or -1 if s is not a known shape.
func ShapeIndex(s Shape) int {
	i, ok := shapeIndex[s]
	if !ok {
		return -1
	}
	return i
}
