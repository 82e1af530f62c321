// Command flatqa generates a FlatQA visual-question-answering dataset.
//
// Usage:
//
//	flatqa --out-dir data --train 1000 --val 100 --test 100
//	flatqa --out-dir data --split CoGenT
//	flatqa --config run.yaml --out-dir data
//
// The output directory receives, per split, the questions, features, and
// scenes files, plus vocab.json and the effective configuration.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flatland/flatqa"
	"github.com/flatland/flatqa/render"
	"github.com/flatland/flatqa/sink"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := flatqa.DefaultConfig()
	var (
		configPath string
		outDir     string
		split      string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "flatqa",
		Short:         "Generate a balanced shapes-and-colors VQA dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := flatqa.LoadConfig(configPath)
				if err != nil {
					return err
				}
				// Flags set on the command line override the file.
				applyFlagOverrides(cmd, &loaded, cfg, split)
				cfg = loaded
			} else {
				cfg.Split = flatqa.SplitKind(split)
			}

			if verbose {
				flatqa.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			} else {
				flatqa.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
			}

			return run(cfg, outDir)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file (flags override it)")
	flags.StringVar(&outDir, "out-dir", ".", "directory receiving the dataset files")
	flags.IntVar(&cfg.TrainExamples, "train", cfg.TrainExamples, "size of the training set")
	flags.IntVar(&cfg.ValExamples, "val", cfg.ValExamples, "size of the validation set")
	flags.IntVar(&cfg.TestExamples, "test", cfg.TestExamples, "size of the test set")
	flags.IntVar(&cfg.NumShapes, "num-shapes", cfg.NumShapes, "number of shapes in the universe")
	flags.IntVar(&cfg.NumColors, "num-colors", cfg.NumColors, "number of colors in the universe")
	flags.IntVar(&cfg.NumObjects, "num-objects", cfg.NumObjects, "objects per scene")
	flags.IntVar(&cfg.ImageSize, "image-size", cfg.ImageSize, "canvas side in pixels")
	flags.IntVar(&cfg.MinObjectSize, "min-obj-size", cfg.MinObjectSize, "minimum object size")
	flags.IntVar(&cfg.MaxObjectSize, "max-obj-size", cfg.MaxObjectSize, "maximum object size")
	flags.BoolVar(&cfg.Rotate, "rotate", cfg.Rotate, "rotate objects by a random angle")
	flags.StringVar(&split, "split", string(cfg.Split), "generalization split: none, CoGenT, diagonal, leave1out")
	flags.BoolVar(&cfg.RestrictScene, "restrict-scene", cfg.RestrictScene,
		"keep held-out objects out of training scenes (leave1out only)")
	flags.Int64Var(&cfg.TrainSeed, "train-seed", cfg.TrainSeed, "training split seed")
	flags.Int64Var(&cfg.ValSeed, "val-seed", cfg.ValSeed, "validation split seed")
	flags.Int64Var(&cfg.TestSeed, "test-seed", cfg.TestSeed, "test split seed")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// applyFlagOverrides copies every explicitly set flag value from the
// flag-bound config over the file-loaded one.
func applyFlagOverrides(cmd *cobra.Command, dst *flatqa.Config, flagCfg flatqa.Config, split string) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("train") {
		dst.TrainExamples = flagCfg.TrainExamples
	}
	if set("val") {
		dst.ValExamples = flagCfg.ValExamples
	}
	if set("test") {
		dst.TestExamples = flagCfg.TestExamples
	}
	if set("num-shapes") {
		dst.NumShapes = flagCfg.NumShapes
	}
	if set("num-colors") {
		dst.NumColors = flagCfg.NumColors
	}
	if set("num-objects") {
		dst.NumObjects = flagCfg.NumObjects
	}
	if set("image-size") {
		dst.ImageSize = flagCfg.ImageSize
	}
	if set("min-obj-size") {
		dst.MinObjectSize = flagCfg.MinObjectSize
	}
	if set("max-obj-size") {
		dst.MaxObjectSize = flagCfg.MaxObjectSize
	}
	if set("rotate") {
		dst.Rotate = flagCfg.Rotate
	}
	if set("split") {
		dst.Split = flatqa.SplitKind(split)
	}
	if set("restrict-scene") {
		dst.RestrictScene = flagCfg.RestrictScene
	}
	if set("train-seed") {
		dst.TrainSeed = flagCfg.TrainSeed
	}
	if set("val-seed") {
		dst.ValSeed = flagCfg.ValSeed
	}
	if set("test-seed") {
		dst.TestSeed = flagCfg.TestSeed
	}
}

func run(cfg flatqa.Config, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	g, err := flatqa.NewGenerator(cfg, flatqa.WithRenderer(render.New(cfg.ImageSize)))
	if err != nil {
		return err
	}

	// Record how this dataset was produced.
	if err := cfg.Save(filepath.Join(outDir, "config.yaml")); err != nil {
		return err
	}

	sinks := make([]*sink.FileSink, 0, 3)
	defer func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}()

	var files [3]*sink.FileSink
	for i, prefix := range []string{"train", "val", "test"} {
		s, err := sink.NewFileSink(outDir, prefix)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
		files[i] = s
	}

	if err := g.GenerateAll(files[0], files[1], files[2]); err != nil {
		return err
	}

	for _, s := range files {
		if err := s.Close(); err != nil {
			return err
		}
	}
	sinks = nil

	return sink.WriteVocab(outDir, g.Vocabulary())
}
