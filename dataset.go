package flatqa

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
)

// Renderer turns a finished scene into encoded image bytes. The generator
// never inspects the pixel content; rendering must not consume the
// generator's random stream.
type Renderer interface {
	Render(scene Scene) ([]byte, error)
}

// Example is one finished dataset record, handed to the sink as soon as
// it is produced and not retained afterwards.
type Example struct {
	// ImageIndex is the example's position within its split and the index
	// of its image in the features file.
	ImageIndex int
	// Question and Program are vocabulary indices, of QuestionLength and
	// ProgramLength respectively.
	Question []int
	Program  []int
	// Answer is 0 for false, 1 for true.
	Answer int
	// Scene is the fully attributed object list behind the image.
	Scene Scene
	// Image is the encoded image produced by the renderer.
	Image []byte
}

// Sink is the append-only consumer of finished examples. Implementations
// decide the container format; see the sink package.
type Sink interface {
	Append(ex Example) error
}

// maxSceneDiscards bounds scene regeneration for a single example index.
// A policy whose askable set cannot produce the required answer for any
// scene (e.g. a one-pair universe where every scene contains that pair,
// leaving no negative question) would otherwise retry forever; hitting
// the cap reports ErrPolicyExhausted instead.
const maxSceneDiscards = 1000

// nopRenderer emits no image bytes. Used when a Generator is constructed
// without a renderer, e.g. for scene-only workloads and tests.
type nopRenderer struct{}

func (nopRenderer) Render(Scene) ([]byte, error) { return nil, nil }

// Generator produces dataset splits for one configuration. Construct it
// with NewGenerator and feed each split a policy, a size, a seed, and a
// sink. The vocabulary is built once from the configured universes and
// shared by all splits.
type Generator struct {
	cfg      Config
	vocab    *Vocabulary
	renderer Renderer
	log      *slog.Logger
}

// NewGenerator validates cfg and builds a generator around it.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := defaultGeneratorOptions()
	for _, opt := range opts {
		opt(&options)
	}
	g := &Generator{
		cfg:      cfg,
		vocab:    BuildVocabulary(cfg.ShapeUniverse(), cfg.ColorUniverse()),
		renderer: options.renderer,
		log:      options.logger,
	}
	if g.renderer == nil {
		g.renderer = nopRenderer{}
	}
	if g.log == nil {
		g.log = Logger()
	}
	return g, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Vocabulary returns the token tables shared by every split of this run.
func (g *Generator) Vocabulary() *Vocabulary { return g.vocab }

// GenerateSplit produces exactly numExamples examples under the given
// policy and seed, appending each to sink in order.
//
// Per example the pipeline is: generate a scene, choose a balanced
// question, render, emit. A scene that cannot carry the required answer
// is discarded and regenerated for the same index, so the output indices
// stay dense and the answers strictly alternate. Fatal errors (canvas too
// small, policy admitting nothing, sink failures) abort immediately.
func (g *Generator) GenerateSplit(policy Policy, numExamples int, seed int64, sink Sink) error {
	shapes := g.cfg.ShapeUniverse()
	colors := g.cfg.ColorUniverse()
	if !policy.AdmitsAny(shapes, colors, PurposeGenerate) {
		return fmt.Errorf("%w for purpose generate", ErrPolicyExhausted)
	}
	if !policy.AdmitsAny(shapes, colors, PurposeAsk) {
		return fmt.Errorf("%w for purpose ask", ErrPolicyExhausted)
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic by design
	discarded := 0
	consecutiveDiscards := 0
	for i := 0; i < numExamples; {
		scene, err := GenerateScene(rng, policy, g.cfg)
		if err != nil {
			return err
		}

		pair, answer, err := GenerateQuestion(rng, scene, i, policy, g.cfg)
		if errors.Is(err, ErrRetryScene) {
			discarded++
			consecutiveDiscards++
			if consecutiveDiscards == maxSceneDiscards {
				return fmt.Errorf("%w: example %d discarded %d scenes without finding an askable pair",
					ErrPolicyExhausted, i, consecutiveDiscards)
			}
			continue
		}
		if err != nil {
			return err
		}
		consecutiveDiscards = 0

		question, err := g.vocab.EncodeQuestion(pair)
		if err != nil {
			return err
		}
		program, err := g.vocab.EncodeProgram(pair)
		if err != nil {
			return err
		}

		image, err := g.renderer.Render(scene)
		if err != nil {
			return fmt.Errorf("flatqa: render example %d: %w", i, err)
		}

		ex := Example{
			ImageIndex: i,
			Question:   question,
			Program:    program,
			Scene:      scene,
			Image:      image,
		}
		if answer {
			ex.Answer = 1
		}
		if err := sink.Append(ex); err != nil {
			return fmt.Errorf("flatqa: sink append example %d: %w", i, err)
		}

		i++
		if i%1000 == 0 {
			g.log.Info("split progress", "examples", i, "discarded_scenes", discarded)
		}
	}
	return nil
}

// GenerateAll runs the train, validation, and test splits with their
// configured sizes and seeds and the split-appropriate policies.
// Validation and test share the evaluation policy, as the distribution
// shifts are defined train-versus-rest.
func (g *Generator) GenerateAll(train, val, test Sink) error {
	trainPolicy, evalPolicy, err := SplitPolicies(g.cfg)
	if err != nil {
		return err
	}

	splits := []struct {
		name   string
		policy Policy
		count  int
		seed   int64
		sink   Sink
	}{
		{"train", trainPolicy, g.cfg.TrainExamples, g.cfg.TrainSeed, train},
		{"val", evalPolicy, g.cfg.ValExamples, g.cfg.ValSeed, val},
		{"test", evalPolicy, g.cfg.TestExamples, g.cfg.TestSeed, test},
	}
	for _, s := range splits {
		g.log.Info("generating split", "split", s.name, "examples", s.count, "seed", s.seed)
		if err := g.GenerateSplit(s.policy, s.count, s.seed, s.sink); err != nil {
			return fmt.Errorf("flatqa: split %s: %w", s.name, err)
		}
	}
	return nil
}
