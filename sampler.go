package flatqa

import (
	"fmt"
	"math/rand"
)

// placementAttempts is the number of independent center draws tried
// before a placement is declared a miss.
const placementAttempts = 10

// PlaceObject draws a size and rotation angle, then tries up to ten
// center positions for the new object, accepting the first that does not
// overlap any existing object.
//
// It returns ErrPlacementMiss when all attempts overlap; the caller
// retries and eventually resets the scene. It returns ErrCanvasTooSmall
// when the drawn object leaves no valid center range at all, which is a
// fatal configuration error.
//
// The random stream is consumed in a fixed order (size, angle, then x/y
// per attempt) so that a seed reproduces placements exactly.
func PlaceObject(rng *rand.Rand, existing []Object, cfg Config) (Object, error) {
	size := cfg.MinObjectSize + rng.Intn(cfg.MaxObjectSize-cfg.MinObjectSize+1)
	angle := 0
	if cfg.Rotate {
		angle = rng.Intn(360)
	}
	obj := NewObject(size, angle)

	minCenter := obj.RotatedSize/2 + 1
	maxCenter := cfg.ImageSize - obj.RotatedSize/2 - 1
	if maxCenter < minCenter {
		return Object{}, fmt.Errorf("%w: rotated size %d on a %d px canvas",
			ErrCanvasTooSmall, obj.RotatedSize, cfg.ImageSize)
	}

	span := maxCenter - minCenter + 1
	for attempt := 0; attempt < placementAttempts; attempt++ {
		obj.Pos = Point{
			X: minCenter + rng.Intn(span),
			Y: minCenter + rng.Intn(span),
		}
		if overlapsAny(obj, existing) {
			continue
		}
		return obj, nil
	}
	return Object{}, ErrPlacementMiss
}

func overlapsAny(obj Object, existing []Object) bool {
	for _, other := range existing {
		if obj.Overlaps(other) {
			return true
		}
	}
	return false
}
