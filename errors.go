package flatqa

import "errors"

// Sentinel errors returned by the generator pipeline.
//
// ErrCanvasTooSmall, ErrPolicyExhausted, and ErrInvalidConfig are fatal
// configuration errors: generation must abort before emitting a partial
// dataset. ErrPlacementMiss and ErrRetryScene are retryable signals that
// the caller handles as part of the rejection-sampling control flow; they
// never surface to users of Generator.
var (
	// ErrInvalidConfig indicates a configuration that fails validation.
	ErrInvalidConfig = errors.New("flatqa: invalid configuration")

	// ErrCanvasTooSmall indicates an object whose rotated bounding square
	// leaves no valid center position on the canvas.
	ErrCanvasTooSmall = errors.New("flatqa: canvas too small for object")

	// ErrPolicyExhausted indicates an admissibility policy that admits no
	// (shape, color) pair for scene generation, which would otherwise make
	// the generate-rejection loop spin forever.
	ErrPolicyExhausted = errors.New("flatqa: policy admits no (shape, color) pair")

	// ErrPlacementMiss reports that no non-overlapping position was found
	// within the placement attempt budget. Retryable.
	ErrPlacementMiss = errors.New("flatqa: no free position found")

	// ErrRetryScene reports that no question with the required answer could
	// be produced for the scene. The caller discards the scene and
	// regenerates. Retryable.
	ErrRetryScene = errors.New("flatqa: scene unusable for requested answer")
)
