// Package render rasterizes flatqa scenes into PNG images.
//
// It is a small software renderer: each object is drawn as a colored
// sprite on a transparent background, rotated by its angle into its
// bounding square, and blitted centered at its position onto a black
// canvas. Rotation uses golang.org/x/image/draw affine transforms with
// nearest-neighbor sampling so sprite edges stay hard.
//
// The renderer never inspects or advances the generator's random stream;
// given the same scene it always produces identical bytes.
package render
