package flatqa

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSink collects examples for assertions.
type memSink struct {
	examples []Example
}

func (s *memSink) Append(ex Example) error {
	s.examples = append(s.examples, ex)
	return nil
}

// failSink fails on the nth append.
type failSink struct {
	failAt int
	n      int
}

func (s *failSink) Append(Example) error {
	s.n++
	if s.n > s.failAt {
		return fmt.Errorf("disk full")
	}
	return nil
}

// decodePair recovers the asked (shape, color) from question indices.
func decodePair(t *testing.T, v *Vocabulary, question []int) Pair {
	t.Helper()
	reverse := make(map[int]string, len(v.QuestionTokenToIdx))
	for tok, idx := range v.QuestionTokenToIdx {
		reverse[idx] = tok
	}
	require.Len(t, question, QuestionLength)
	return Pair{
		Shape: Shape(reverse[question[4]]),
		Color: Color(reverse[question[3]]),
	}
}

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.NumObjects = 0
	_, err := NewGenerator(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateSplitBalanceAndAlternation(t *testing.T) {
	g, err := NewGenerator(testConfig())
	require.NoError(t, err)

	var sink memSink
	require.NoError(t, g.GenerateSplit(NewUnrestrictedPolicy(), 20, 1, &sink))
	require.Len(t, sink.examples, 20)

	trues := 0
	for i, ex := range sink.examples {
		assert.Equal(t, i, ex.ImageIndex)
		assert.Equal(t, i%2, ex.Answer, "answers must strictly alternate")
		trues += ex.Answer
		assert.Len(t, ex.Question, QuestionLength)
		assert.Len(t, ex.Program, ProgramLength)
		assert.Len(t, ex.Scene, g.Config().NumObjects)
	}
	assert.Equal(t, 10, trues, "even-sized split must be exactly balanced")
}

func TestGenerateSplitDeterministic(t *testing.T) {
	cfg := testConfig()

	run := func() []Example {
		g, err := NewGenerator(cfg)
		require.NoError(t, err)
		var sink memSink
		require.NoError(t, g.GenerateSplit(NewUnrestrictedPolicy(), 16, 7, &sink))
		return sink.examples
	}

	assert.Equal(t, run(), run(), "same seed and config must reproduce the dataset")
}

func TestGenerateSplitAnswersMatchScenes(t *testing.T) {
	g, err := NewGenerator(testConfig())
	require.NoError(t, err)

	var sink memSink
	require.NoError(t, g.GenerateSplit(NewUnrestrictedPolicy(), 30, 3, &sink))

	for _, ex := range sink.examples {
		pair := decodePair(t, g.Vocabulary(), ex.Question)
		assert.Equal(t, ex.Answer == 1, ex.Scene.Contains(pair),
			"answer bit must reflect pair presence")
	}
}

func TestGenerateSplitPolicyExhaustedUpFront(t *testing.T) {
	cfg := testConfig()
	cfg.NumShapes = 1
	cfg.NumColors = 1
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	policy := NewLeaveOneOutPolicy(Pair{ShapeSquare, ColorRed}, false, true)
	var sink memSink
	err = g.GenerateSplit(policy, 4, 1, &sink)
	require.ErrorIs(t, err, ErrPolicyExhausted)
	assert.Empty(t, sink.examples, "no partial output on fatal errors")
}

func TestGenerateSplitPolicyWithNoAskablePairs(t *testing.T) {
	cfg := testConfig()
	cfg.NumShapes = 3
	cfg.NumColors = 2
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	// Test-mode CoGenT with empty color sets: circles are still fine to
	// place in scenes, but no pair at all may be asked about.
	policy := NewCoGenTPolicy(nil, nil, true)
	require.True(t, policy.AdmitsAny(cfg.ShapeUniverse(), cfg.ColorUniverse(), PurposeGenerate))
	require.False(t, policy.AdmitsAny(cfg.ShapeUniverse(), cfg.ColorUniverse(), PurposeAsk))

	var sink memSink
	err = g.GenerateSplit(policy, 2, 1, &sink)
	require.ErrorIs(t, err, ErrPolicyExhausted)
	assert.Empty(t, sink.examples, "no partial output on fatal errors")
}

func TestGenerateSplitSceneDiscardCap(t *testing.T) {
	cfg := testConfig()
	cfg.NumShapes = 1
	cfg.NumColors = 1
	cfg.NumObjects = 1
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	// With a one-pair universe every scene contains the pair, so the
	// even-index example can never get a false answer. The discard cap
	// turns the would-be endless retry into a fatal error.
	var sink memSink
	err = g.GenerateSplit(NewUnrestrictedPolicy(), 2, 1, &sink)
	require.ErrorIs(t, err, ErrPolicyExhausted)
	assert.Empty(t, sink.examples)
}

func TestGenerateSplitSinkFailureAborts(t *testing.T) {
	g, err := NewGenerator(testConfig())
	require.NoError(t, err)

	err = g.GenerateSplit(NewUnrestrictedPolicy(), 10, 1, &failSink{failAt: 3})
	require.Error(t, err)
}

func TestGenerateAllCoGenTSoundness(t *testing.T) {
	cfg := testConfig()
	cfg.Split = SplitCoGenT
	cfg.TrainExamples = 30
	cfg.ValExamples = 10
	cfg.TestExamples = 10
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	var train, val, test memSink
	require.NoError(t, g.GenerateAll(&train, &val, &test))
	require.Len(t, train.examples, 30)

	set2 := map[Color]bool{ColorRed: true, ColorGreen: true, ColorPurple: true, ColorCyan: true}
	for _, ex := range train.examples {
		for _, obj := range ex.Scene {
			if obj.Shape == ShapeSquare {
				assert.False(t, set2[obj.Color], "training square with held-out color %s", obj.Color)
			}
			if obj.Shape == ShapeTriangle {
				assert.True(t, set2[obj.Color], "training triangle with held-out color %s", obj.Color)
			}
		}
	}
	for _, sink := range []*memSink{&val, &test} {
		for _, ex := range sink.examples {
			pair := decodePair(t, g.Vocabulary(), ex.Question)
			assert.Contains(t, []Shape{ShapeSquare, ShapeTriangle}, pair.Shape,
				"evaluation questions are restricted to the controlled shapes")
		}
	}
}

func TestGenerateAllDiagonalSoundness(t *testing.T) {
	cfg := testConfig()
	cfg.Split = SplitDiagonal
	cfg.TrainExamples = 30
	cfg.ValExamples = 10
	cfg.TestExamples = 10
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	var train, val, test memSink
	require.NoError(t, g.GenerateAll(&train, &val, &test))

	for _, ex := range train.examples {
		pair := decodePair(t, g.Vocabulary(), ex.Question)
		assert.NotEqual(t, ShapeIndex(pair.Shape), ColorIndex(pair.Color),
			"training must never ask about diagonal pairs")
	}
	for _, sink := range []*memSink{&val, &test} {
		for _, ex := range sink.examples {
			pair := decodePair(t, g.Vocabulary(), ex.Question)
			assert.Equal(t, ShapeIndex(pair.Shape), ColorIndex(pair.Color),
				"evaluation must only ask about diagonal pairs")
		}
	}
}

func TestGenerateAllLeaveOneOutSoundness(t *testing.T) {
	cfg := testConfig()
	cfg.Split = SplitLeaveOneOut
	cfg.TrainExamples = 30
	cfg.ValExamples = 10
	cfg.TestExamples = 10
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	var train, val, test memSink
	require.NoError(t, g.GenerateAll(&train, &val, &test))

	for _, ex := range train.examples {
		pair := decodePair(t, g.Vocabulary(), ex.Question)
		assert.NotEqual(t, LeaveOneOutPair, pair, "held-out pair asked during training")
		for _, obj := range ex.Scene {
			assert.NotEqual(t, LeaveOneOutPair, obj.Pair(), "held-out pair placed during training")
		}
	}
	for _, sink := range []*memSink{&val, &test} {
		for _, ex := range sink.examples {
			pair := decodePair(t, g.Vocabulary(), ex.Question)
			assert.Equal(t, LeaveOneOutPair, pair,
				"held-out pair is the only evaluation question subject")
		}
	}
}

// TestSmallUniverseScenario pins the behavior of a tiny reference run:
// two shapes, two colors, a single object per scene, no rotation.
func TestSmallUniverseScenario(t *testing.T) {
	cfg := Config{
		TrainExamples: 2,
		NumShapes:     2,
		NumColors:     2,
		NumObjects:    1,
		ImageSize:     64,
		MinObjectSize: 10,
		MaxObjectSize: 15,
		Rotate:        false,
		Split:         SplitNone,
		TrainSeed:     1,
		ValSeed:       2,
		TestSeed:      3,
	}
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	var sink memSink
	require.NoError(t, g.GenerateSplit(NewUnrestrictedPolicy(), 2, cfg.TrainSeed, &sink))
	require.Len(t, sink.examples, 2)

	vocabSize := len(g.Vocabulary().QuestionTokenToIdx)
	for i, ex := range sink.examples {
		assert.Equal(t, i%2, ex.Answer)
		require.Len(t, ex.Question, QuestionLength)
		for _, idx := range ex.Question {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, vocabSize)
		}
		// is there a ...
		assert.Equal(t, 3, ex.Question[0])
		assert.Equal(t, 4, ex.Question[1])
		assert.Equal(t, 5, ex.Question[2])

		pair := decodePair(t, g.Vocabulary(), ex.Question)
		assert.Equal(t, ex.Answer == 1, ex.Scene.Contains(pair))
	}

	// With a single object the positive question names exactly that object.
	pos := sink.examples[1]
	pair := decodePair(t, g.Vocabulary(), pos.Question)
	require.Len(t, pos.Scene, 1)
	assert.Equal(t, pos.Scene[0].Pair(), pair)
}
