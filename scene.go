package flatqa

import (
	"errors"
	"fmt"
	"math/rand"
)

// Scene is the ordered list of objects produced by one generation pass.
// The order is placement order and carries no further meaning. A scene is
// complete and immutable by the time a question is asked about it.
type Scene []Object

// Contains reports whether any object in the scene has the given
// (shape, color) combination.
func (s Scene) Contains(pair Pair) bool {
	for _, obj := range s {
		if obj.Pair() == pair {
			return true
		}
	}
	return false
}

// sceneResetThreshold is the number of placement misses accumulated
// within one scene build before all placed objects are discarded and the
// scene is rebuilt from scratch. Successful placements do not clear the
// count; it resets only with the scene.
const sceneResetThreshold = 10

// pairDrawFactor bounds the generate-admissibility rejection loop:
// the cap is pairDrawFactor draws per pair in the universe. A policy that
// admits nothing would otherwise spin forever; hitting the cap reports
// ErrPolicyExhausted instead.
const pairDrawFactor = 100

// GenerateScene builds a scene of exactly cfg.NumObjects objects whose
// (shape, color) pairs are admissible under policy for PurposeGenerate
// and whose bounding squares satisfy the Manhattan separation invariant.
//
// Each iteration rejection-samples an admissible pair, then asks
// PlaceObject for a position. Placement misses accumulate over the
// whole build; once sceneResetThreshold of them pile up the partial
// scene is discarded and placement restarts with an empty canvas. This
// bounds worst-case work while tolerating transient bad geometric luck.
func GenerateScene(rng *rand.Rand, policy Policy, cfg Config) (Scene, error) {
	shapes := cfg.ShapeUniverse()
	colors := cfg.ColorUniverse()
	maxPairDraws := pairDrawFactor * len(shapes) * len(colors)

	objects := make(Scene, 0, cfg.NumObjects)
	failures := 0
	resets := 0
	for len(objects) < cfg.NumObjects {
		pair, err := drawAdmissiblePair(rng, policy, shapes, colors, maxPairDraws)
		if err != nil {
			return nil, err
		}

		obj, err := PlaceObject(rng, objects, cfg)
		if errors.Is(err, ErrPlacementMiss) {
			failures++
			if failures == sceneResetThreshold {
				objects = objects[:0]
				failures = 0
				resets++
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		obj.Shape = pair.Shape
		obj.Color = pair.Color
		objects = append(objects, obj)
	}
	if resets > 0 {
		Logger().Debug("scene generation reset", "resets", resets)
	}
	return objects, nil
}

// drawAdmissiblePair samples uniformly from the universes until the
// policy admits the pair for scene generation, up to maxDraws attempts.
func drawAdmissiblePair(rng *rand.Rand, policy Policy, shapes []Shape, colors []Color, maxDraws int) (Pair, error) {
	for i := 0; i < maxDraws; i++ {
		pair := Pair{
			Shape: shapes[rng.Intn(len(shapes))],
			Color: colors[rng.Intn(len(colors))],
		}
		if policy.Allowed(pair, PurposeGenerate) {
			return pair, nil
		}
	}
	return Pair{}, fmt.Errorf("%w after %d draws", ErrPolicyExhausted, maxDraws)
}
