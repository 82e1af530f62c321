package flatqa

import "math/rand"

// negativeAttempts is the number of pair draws tried when looking for an
// askable pair that is absent from the scene.
const negativeAttempts = 11

// GenerateQuestion chooses the (shape, color) pair a question asks about
// and the answer for it.
//
// The answer is fixed by the example index alone: even indices get
// "false", odd indices get "true". That strict alternation makes every
// even-sized split exactly balanced, independent of scene content.
//
// For a true answer, the pair is drawn uniformly from the scene's objects
// whose pairs the policy allows for PurposeAsk. For a false answer, a
// pair is rejection-sampled from the universes until one is askable and
// absent from the scene, up to negativeAttempts draws.
//
// When no suitable pair exists the function returns ErrRetryScene; the
// caller discards the scene and regenerates one for the same index. This
// is expected, bounded-probability behavior, not a failure of the run.
func GenerateQuestion(rng *rand.Rand, scene Scene, exampleIndex int, policy Policy, cfg Config) (Pair, bool, error) {
	answer := exampleIndex%2 == 1
	if answer {
		pair, err := drawPresentPair(rng, scene, policy)
		return pair, true, err
	}
	pair, err := drawAbsentPair(rng, scene, policy, cfg)
	return pair, false, err
}

// drawPresentPair picks uniformly among the scene's askable pairs.
func drawPresentPair(rng *rand.Rand, scene Scene, policy Policy) (Pair, error) {
	candidates := make([]Pair, 0, len(scene))
	for _, obj := range scene {
		if policy.Allowed(obj.Pair(), PurposeAsk) {
			candidates = append(candidates, obj.Pair())
		}
	}
	if len(candidates) == 0 {
		return Pair{}, ErrRetryScene
	}
	return candidates[rng.Intn(len(candidates))], nil
}

// drawAbsentPair rejection-samples an askable pair not present in the
// scene. Draws rejected by the policy still consume an attempt, keeping
// the loop strictly bounded.
func drawAbsentPair(rng *rand.Rand, scene Scene, policy Policy, cfg Config) (Pair, error) {
	shapes := cfg.ShapeUniverse()
	colors := cfg.ColorUniverse()
	for attempt := 0; attempt < negativeAttempts; attempt++ {
		pair := Pair{
			Shape: shapes[rng.Intn(len(shapes))],
			Color: colors[rng.Intn(len(colors))],
		}
		if !policy.Allowed(pair, PurposeAsk) {
			continue
		}
		if !scene.Contains(pair) {
			return pair, nil
		}
	}
	return Pair{}, ErrRetryScene
}
