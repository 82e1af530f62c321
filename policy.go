package flatqa

import "fmt"

// Purpose distinguishes the two questions a policy answers: may a pair
// appear in a generated scene, and may a pair be the subject of a
// question. The two purposes may disagree for the same pair; the
// evaluation-time policies rely on that asymmetry.
type Purpose uint8

// The two policy purposes.
const (
	PurposeGenerate Purpose = iota
	PurposeAsk
)

// String returns the purpose name.
func (p Purpose) String() string {
	switch p {
	case PurposeGenerate:
		return "generate"
	case PurposeAsk:
		return "ask"
	default:
		return fmt.Sprintf("Purpose(%d)", uint8(p))
	}
}

// policyKind enumerates the closed set of policy variants. There is no
// external extension point: the four families below are the whole design
// space, dispatched through Policy.Allowed.
type policyKind uint8

const (
	policyUnrestricted policyKind = iota
	policyCoGenT
	policyDiagonal
	policyLeaveOneOut
)

// Policy is a pure predicate over (shape, color, purpose). It is an
// immutable value: construct one per split and query it freely. Identical
// inputs always yield identical answers.
type Policy struct {
	kind policyKind
	test bool

	// CoGenT: colors admissible for squares and for triangles.
	squareColors   map[Color]bool
	triangleColors map[Color]bool

	// Leave-one-out.
	holdout       Pair
	inverse       bool
	restrictScene bool
}

// NewUnrestrictedPolicy allows every pair for every purpose.
func NewUnrestrictedPolicy() Policy {
	return Policy{kind: policyUnrestricted}
}

// NewCoGenTPolicy restricts squares to squareColors and triangles to
// triangleColors; other shapes are unrestricted. In test mode the policy
// additionally refuses to ask about any shape other than square or
// triangle, so that evaluation isolates the held-out combinations.
func NewCoGenTPolicy(squareColors, triangleColors []Color, test bool) Policy {
	return Policy{
		kind:           policyCoGenT,
		test:           test,
		squareColors:   colorSet(squareColors),
		triangleColors: colorSet(triangleColors),
	}
}

// NewDiagonalPolicy excludes pairs whose shape and color share the same
// canonical index. In test mode any pair may be generated, but only
// diagonal pairs may be asked about.
func NewDiagonalPolicy(test bool) Policy {
	return Policy{kind: policyDiagonal, test: test}
}

// NewLeaveOneOutPolicy excludes the single holdout pair. With inverse set
// the predicate flips: only the holdout pair is admissible — the
// evaluation-time configuration. restrictScene extends the exclusion from
// questions to generated scene content; with it disabled the policy
// admits everything for PurposeGenerate.
func NewLeaveOneOutPolicy(holdout Pair, inverse, restrictScene bool) Policy {
	return Policy{
		kind:          policyLeaveOneOut,
		holdout:       holdout,
		inverse:       inverse,
		restrictScene: restrictScene,
	}
}

// Allowed reports whether pair is admissible for the given purpose.
func (p Policy) Allowed(pair Pair, purpose Purpose) bool {
	switch p.kind {
	case policyCoGenT:
		switch pair.Shape {
		case ShapeSquare:
			return p.squareColors[pair.Color]
		case ShapeTriangle:
			return p.triangleColors[pair.Color]
		}
		// At test time questions are asked only about the controlled
		// shapes; scenes may still contain anything else.
		if p.test && purpose != PurposeGenerate {
			return false
		}
		return true

	case policyDiagonal:
		diagonal := ShapeIndex(pair.Shape) == ColorIndex(pair.Color)
		if p.test {
			return purpose == PurposeGenerate || diagonal
		}
		return !diagonal

	case policyLeaveOneOut:
		if !p.restrictScene && purpose == PurposeGenerate {
			return true
		}
		match := pair == p.holdout
		if p.inverse {
			return match
		}
		return !match

	default:
		return true
	}
}

// AdmitsAny reports whether at least one pair from the given universes is
// admissible for purpose. Scene generation requires this to hold for
// PurposeGenerate; a policy failing the check is a configuration error,
// not a retryable condition.
func (p Policy) AdmitsAny(shapes []Shape, colors []Color, purpose Purpose) bool {
	for _, s := range shapes {
		for _, c := range colors {
			if p.Allowed(Pair{Shape: s, Color: c}, purpose) {
				return true
			}
		}
	}
	return false
}

// CoGenT color assignments. Training restricts squares to set 1 and
// triangles to set 2; validation and test swap the sets, so every
// evaluation-time (square, color) and (triangle, color) combination is
// unseen during training.
var (
	cogentSet1 = []Color{ColorGray, ColorBlue, ColorBrown, ColorYellow}
	cogentSet2 = []Color{ColorRed, ColorGreen, ColorPurple, ColorCyan}
)

// LeaveOneOutPair is the designated held-out combination for the
// leave-one-out split.
var LeaveOneOutPair = Pair{Shape: ShapeSquare, Color: ColorRed}

// SplitPolicies returns the training policy and the shared
// validation/test policy for the configured split kind.
func SplitPolicies(cfg Config) (train, eval Policy, err error) {
	switch cfg.Split {
	case SplitNone, "":
		return NewUnrestrictedPolicy(), NewUnrestrictedPolicy(), nil
	case SplitCoGenT:
		train = NewCoGenTPolicy(cogentSet1, cogentSet2, false)
		eval = NewCoGenTPolicy(cogentSet2, cogentSet1, true)
		return train, eval, nil
	case SplitDiagonal:
		return NewDiagonalPolicy(false), NewDiagonalPolicy(true), nil
	case SplitLeaveOneOut:
		train = NewLeaveOneOutPolicy(LeaveOneOutPair, false, cfg.RestrictScene)
		eval = NewLeaveOneOutPolicy(LeaveOneOutPair, true, false)
		return train, eval, nil
	default:
		return Policy{}, Policy{}, fmt.Errorf("%w: unknown split %q", ErrInvalidConfig, cfg.Split)
	}
}

func colorSet(colors []Color) map[Color]bool {
	m := make(map[Color]bool, len(colors))
	for _, c := range colors {
		m[c] = true
	}
	return m
}
