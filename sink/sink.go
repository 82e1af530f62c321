package sink

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flatland/flatqa"
)

// questionRecord is the JSON layout of one line in the questions file.
type questionRecord struct {
	Question []int `json:"question"`
	Program  []int `json:"program"`
	Answer   int   `json:"answer"`
	ImageIdx int   `json:"image_idx"`
}

// FileSink streams examples for one split to disk. Questions and image
// features are appended as they arrive; scene records are held back and
// written as a single JSON document on Close, so a crashed run leaves no
// truncated scenes file behind.
type FileSink struct {
	questionsFile *os.File
	questions     *bufio.Writer
	featuresFile  *os.File
	features      *bufio.Writer
	scenes        []flatqa.Scene
	scenesPath    string
	count         int
}

// Compile-time check that FileSink satisfies the generator's contract.
var _ flatqa.Sink = (*FileSink)(nil)

// NewFileSink creates the split files under dir with the given prefix
// (conventionally "train", "val", or "test").
func NewFileSink(dir, prefix string) (*FileSink, error) {
	qf, err := os.Create(filepath.Join(dir, prefix+"_questions.jsonl")) //nolint:gosec // dataset output path
	if err != nil {
		return nil, fmt.Errorf("sink: create questions file: %w", err)
	}
	ff, err := os.Create(filepath.Join(dir, prefix+"_features.bin")) //nolint:gosec // dataset output path
	if err != nil {
		_ = qf.Close()
		return nil, fmt.Errorf("sink: create features file: %w", err)
	}
	return &FileSink{
		questionsFile: qf,
		questions:     bufio.NewWriter(qf),
		featuresFile:  ff,
		features:      bufio.NewWriter(ff),
		scenesPath:    filepath.Join(dir, prefix+"_scenes.json"),
	}, nil
}

// Append writes one example to the questions and features files and
// retains its scene record for Close.
func (s *FileSink) Append(ex flatqa.Example) error {
	rec := questionRecord{
		Question: ex.Question,
		Program:  ex.Program,
		Answer:   ex.Answer,
		ImageIdx: ex.ImageIndex,
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := s.questions.Write(append(line, '\n')); err != nil {
		return err
	}

	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(ex.Image)))
	if _, err := s.features.Write(lenBuf[:n]); err != nil {
		return err
	}
	if _, err := s.features.Write(ex.Image); err != nil {
		return err
	}

	s.scenes = append(s.scenes, ex.Scene)
	s.count++
	return nil
}

// Count returns the number of examples appended so far.
func (s *FileSink) Count() int { return s.count }

// Close flushes the streamed files and writes the scenes document.
func (s *FileSink) Close() error {
	if err := s.questions.Flush(); err != nil {
		return err
	}
	if err := s.questionsFile.Close(); err != nil {
		return err
	}
	if err := s.features.Flush(); err != nil {
		return err
	}
	if err := s.featuresFile.Close(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.scenes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.scenesPath, data, 0o644)
}

// WriteVocab writes the vocabulary tables as vocab.json under dir.
func WriteVocab(dir string, v *flatqa.Vocabulary) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "vocab.json"), data, 0o644)
}
