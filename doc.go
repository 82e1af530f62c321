// Package flatqa generates labeled visual-question-answering datasets of
// flat 2D scenes.
//
// # Overview
//
// Each example is a scene of randomly placed, non-overlapping colored
// shapes, a yes/no question asking whether a (shape, color) combination
// is present, a fixed-structure symbolic program encoding that question,
// and the answer. Datasets are exactly answer-balanced (answers strictly
// alternate by example index) and bit-reproducible from their seeds.
//
// # Quick Start
//
//	import (
//	    "github.com/flatland/flatqa"
//	    "github.com/flatland/flatqa/render"
//	    "github.com/flatland/flatqa/sink"
//	)
//
//	cfg := flatqa.DefaultConfig()
//	g, err := flatqa.NewGenerator(cfg, flatqa.WithRenderer(render.New(cfg.ImageSize)))
//	// create one sink per split, then:
//	err = g.GenerateAll(trainSink, valSink, testSink)
//
// # Generalization splits
//
// Beyond the unrestricted default, three admissibility policy families
// engineer a train/test distribution shift: CoGenT (disjoint color sets
// for squares and triangles, swapped at evaluation time), diagonal
// (shape index equals color index withheld from training), and
// leave-one-out (one designated pair withheld). See Policy and
// SplitPolicies.
//
// # Architecture
//
// The library is organized into:
//   - Core: Object, PlaceObject, Policy, GenerateScene, GenerateQuestion,
//     BuildVocabulary, Generator
//   - render/: software rasterizer producing PNG scenes
//   - sink/: dataset container writers
//   - cmd/flatqa: command-line interface
//
// # Coordinate System
//
// The canvas uses integer pixel coordinates with the origin at the
// top-left; object positions are sprite centers. Angles are in degrees.
//
// # Determinism
//
// Each split consumes a single seeded random stream in a fixed order
// (pair draws before placement draws), so identical configuration and
// seeds reproduce a bit-identical dataset.
package flatqa

// Version is the current version of the library.
const Version = "0.1.0"
