package flatqa

import (
	"encoding/json"
	"math"
)

// Point is an integer position on the scene canvas.
type Point struct {
	X, Y int
}

// MarshalJSON encodes the point as a [x, y] array, matching the scene
// record layout consumed by downstream tooling.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a [x, y] array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy [2]int
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Object is one placed entity in a scene.
//
// Size is the base linear dimension of the sprite; RotatedSize is the side
// of the axis-aligned bounding square after rotating the sprite by Angle
// degrees, and is always >= Size. Pos is the center of the object on the
// canvas. Shape and Color are assigned once a valid position is found.
type Object struct {
	Size        int   `json:"size"`
	RotatedSize int   `json:"rotated_size"`
	Angle       int   `json:"angle"`
	Pos         Point `json:"pos"`
	Shape       Shape `json:"shape"`
	Color       Color `json:"color"`
}

// NewObject creates an unplaced object with the given size and rotation
// angle in degrees, deriving RotatedSize.
func NewObject(size, angle int) Object {
	return Object{
		Size:        size,
		Angle:       angle,
		RotatedSize: rotatedSize(size, angle),
	}
}

// rotatedSize is the bounding-square side of a size x size square rotated
// by angle degrees: ceil(size * (|sin| + |cos|)).
func rotatedSize(size, angle int) int {
	rad := float64(angle) / 180 * math.Pi
	return int(math.Ceil(float64(size) * (math.Abs(math.Sin(rad)) + math.Abs(math.Cos(rad)))))
}

// Overlaps reports whether the bounding squares of o and other are closer
// than the minimum Manhattan separation. This is a conservative
// approximation of geometric overlap: two objects whose centers satisfy
// |dx| + |dy| >= RotatedSize(o) + RotatedSize(other) + 1 can never touch.
func (o Object) Overlaps(other Object) bool {
	minDist := o.RotatedSize + other.RotatedSize + 1
	dx := abs(o.Pos.X - other.Pos.X)
	dy := abs(o.Pos.Y - other.Pos.Y)
	return dx+dy < minDist
}

// Pair returns the object's (shape, color) combination.
func (o Object) Pair() Pair {
	return Pair{Shape: o.Shape, Color: o.Color}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
