package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/flatland/flatqa"
)

// MinSpriteSize is the smallest drawable sprite side. Below this the
// thick-stroke shapes degenerate to nothing.
const MinSpriteSize = 8

// Errors reported while drawing sprites.
var (
	// ErrSpriteTooSmall indicates an object smaller than MinSpriteSize.
	ErrSpriteTooSmall = errors.New("render: object too small to draw")
	// ErrUnknownShape indicates a shape with no drawing routine.
	ErrUnknownShape = errors.New("render: unknown shape")
	// ErrUnknownColor indicates a color missing from the palette.
	ErrUnknownColor = errors.New("render: unknown color")
)

// drawSprite renders shape in col onto a transparent square pixmap of the
// given size. The geometry of each shape matches the dataset contract:
// filled square/triangle/circle, outline square/triangle with stroke
// width size/4-1, and size/4-thick cross and bar strokes.
func drawSprite(size int, shape flatqa.Shape, col flatqa.Color) (*Pixmap, error) {
	if size < MinSpriteSize {
		return nil, fmt.Errorf("%w: size %d < %d", ErrSpriteTooSmall, size, MinSpriteSize)
	}
	rgba, ok := PaletteColor(col)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, col)
	}

	pm := NewPixmap(size, size)
	w, h := size, size
	switch shape {
	case flatqa.ShapeSquare:
		fillRect(pm, 0, 0, w, h, rgba)
	case flatqa.ShapeCircle:
		fillCircle(pm, float64(w)/2, float64(h)/2, float64(w)/2, rgba)
	case flatqa.ShapeTriangle:
		fillTriangle(pm, 0, 0, float64(w)/2, float64(h-1), float64(w-1), 0, rgba)
	case flatqa.ShapeEmptyTriangle:
		t := float64(w/4 - 1)
		strokeLine(pm, 0, 0, float64(w)/2, float64(h-1), t, rgba)
		strokeLine(pm, float64(w)/2, float64(h-1), float64(w-1), 0, t, rgba)
		strokeLine(pm, float64(w-1), 0, 0, 0, t, rgba)
	case flatqa.ShapeEmptySquare:
		t := w/4 - 1
		fillRect(pm, 0, 0, w, t, rgba)
		fillRect(pm, 0, h-t, w, t, rgba)
		fillRect(pm, 0, 0, t, h, rgba)
		fillRect(pm, w-t, 0, t, h, rgba)
	case flatqa.ShapeCross:
		t := float64(w) / 4
		strokeLine(pm, 0, 0, float64(w-1), float64(h-1), t, rgba)
		strokeLine(pm, float64(w-1), 0, 0, float64(h-1), t, rgba)
	case flatqa.ShapeBar:
		strokeLine(pm, 0, float64(h)/2, float64(w-1), float64(h)/2, float64(w)/4, rgba)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	return pm, nil
}

// fillRect fills an axis-aligned rectangle, clipped to the pixmap.
func fillRect(pm *Pixmap, x, y, w, h int, col RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			pm.SetPixel(px, py, col)
		}
	}
}

// fillCircle fills a circle of radius r centered at (cx, cy).
func fillCircle(pm *Pixmap, cx, cy, r float64, col RGBA) {
	for py := 0; py < pm.Height(); py++ {
		for px := 0; px < pm.Width(); px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				pm.SetPixel(px, py, col)
			}
		}
	}
}

// fillTriangle fills the triangle (x0,y0) (x1,y1) (x2,y2) using a
// same-side-of-all-edges test on pixel centers.
func fillTriangle(pm *Pixmap, x0, y0, x1, y1, x2, y2 float64, col RGBA) {
	for py := 0; py < pm.Height(); py++ {
		for px := 0; px < pm.Width(); px++ {
			x := float64(px) + 0.5
			y := float64(py) + 0.5
			d0 := edge(x0, y0, x1, y1, x, y)
			d1 := edge(x1, y1, x2, y2, x, y)
			d2 := edge(x2, y2, x0, y0, x, y)
			neg := d0 < 0 || d1 < 0 || d2 < 0
			pos := d0 > 0 || d1 > 0 || d2 > 0
			if !(neg && pos) {
				pm.SetPixel(px, py, col)
			}
		}
	}
}

// edge is the signed area of the triangle (ax,ay) (bx,by) (px,py); its
// sign tells which side of the edge the point lies on.
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// strokeLine draws a segment with the given stroke thickness by testing
// each pixel center's distance to the segment.
func strokeLine(pm *Pixmap, x0, y0, x1, y1, thickness float64, col RGBA) {
	if thickness < 1 {
		thickness = 1
	}
	half := thickness / 2
	for py := 0; py < pm.Height(); py++ {
		for px := 0; px < pm.Width(); px++ {
			x := float64(px) + 0.5
			y := float64(py) + 0.5
			if distToSegment(x, y, x0, y0, x1, y1) <= half {
				pm.SetPixel(px, py, col)
			}
		}
	}
}

// distToSegment returns the distance from (px,py) to the segment
// (x0,y0)-(x1,y1).
func distToSegment(px, py, x0, y0, x1, y1 float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-x0)*dx + (py-y0)*dy) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	cx := x0 + t*dx
	cy := y0 + t*dy
	ex := px - cx
	ey := py - cy
	return math.Sqrt(ex*ex + ey*ey)
}
