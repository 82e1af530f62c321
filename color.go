package flatqa

// Color identifies one of the palette colors.
// Like Shapes, the declaration order of Colors fixes vocabulary indices
// and the color half of the diagonal split.
type Color string

// All supported colors, in canonical order.
const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorCyan   Color = "cyan"
	ColorPurple Color = "purple"
	ColorBrown  Color = "brown"
	ColorGray   Color = "gray"
)

// Colors is the full ordered color universe. A run uses a prefix of it.
var Colors = []Color{
	ColorRed,
	ColorGreen,
	ColorBlue,
	ColorYellow,
	ColorCyan,
	ColorPurple,
	ColorBrown,
	ColorGray,
}

var colorIndex = func() map[Color]int {
	m := make(map[Color]int, len(Colors))
	for i, c := range Colors {
		m[c] = i
	}
	return m
}()

// ColorIndex returns the position of c in the canonical color order,
// or -1 if c is not a known color.
func ColorIndex(c Color) int {
	i, ok := colorIndex[c]
	if !ok {
		return -1
	}
	return i
}

// Pair is a (shape, color) combination: the subject of every question and
// the unit the admissibility policies reason about.
type Pair struct {
	Shape Shape
	Color Color
}
