package render

import (
	"bytes"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/flatland/flatqa"
)

// Renderer is the software scene renderer. It implements flatqa.Renderer.
type Renderer struct {
	size       int
	background RGBA
}

// Compile-time check that Renderer satisfies the generator's contract.
var _ flatqa.Renderer = (*Renderer)(nil)

// New creates a renderer for a square canvas of the given pixel size.
func New(size int) *Renderer {
	return &Renderer{size: size, background: Black}
}

// Render rasterizes the scene and returns it encoded as PNG bytes.
func (r *Renderer) Render(scene flatqa.Scene) ([]byte, error) {
	canvas, err := r.RenderPixmap(scene)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPixmap rasterizes the scene into a pixel buffer. Objects are
// drawn in scene order; later objects would paint over earlier ones, but
// generated scenes never overlap.
func (r *Renderer) RenderPixmap(scene flatqa.Scene) (*Pixmap, error) {
	canvas := NewPixmap(r.size, r.size)
	canvas.Clear(r.background)
	for _, obj := range scene {
		sprite, err := drawSprite(obj.Size, obj.Shape, obj.Color)
		if err != nil {
			return nil, err
		}
		rotated := rotateSprite(sprite, obj.Angle, obj.RotatedSize)
		blit(canvas, rotated, obj.Pos.X, obj.Pos.Y)
	}
	return canvas, nil
}

// rotateSprite rotates the sprite counter-clockwise by angle degrees into
// a dstSize bounding square. Nearest-neighbor sampling keeps edges hard
// and avoids translucent fringes around the sprite.
func rotateSprite(sprite *Pixmap, angle, dstSize int) *image.RGBA {
	src := sprite.ToImage()
	if angle%360 == 0 {
		return src
	}
	rad := float64(angle) / 180 * math.Pi
	sin, cos := math.Sincos(rad)

	srcC := float64(sprite.Width()) / 2
	dstC := float64(dstSize) / 2
	// Source-to-destination transform: rotate about the sprite center,
	// then recenter in the destination square. With y growing downward
	// the (cos, sin / -sin, cos) arrangement turns counter-clockwise.
	m := f64.Aff3{
		cos, sin, dstC - cos*srcC - sin*srcC,
		-sin, cos, dstC + sin*srcC - cos*srcC,
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstSize, dstSize))
	xdraw.NearestNeighbor.Transform(dst, m, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// blit copies the opaque pixels of img onto the canvas, centered at
// (cx, cy).
func blit(canvas *Pixmap, img *image.RGBA, cx, cy int) {
	bounds := img.Bounds()
	left := cx - bounds.Dx()/2
	top := cy - bounds.Dy()/2
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			if img.Pix[i+3] == 0 {
				continue
			}
			canvas.SetPixel(left+x-bounds.Min.X, top+y-bounds.Min.Y, RGBA{
				R: float64(img.Pix[i+0]) / 255,
				G: float64(img.Pix[i+1]) / 255,
				B: float64(img.Pix[i+2]) / 255,
				A: 1,
			})
		}
	}
}
