package sink

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadFeatures decodes a features file back into one byte slice per
// example, in example order. Used by tests and dataset inspection
// tooling; generation itself never reads features back.
func ReadFeatures(path string) ([][]byte, error) {
	f, err := os.Open(path) //nolint:gosec // dataset input path
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	r := bufio.NewReader(f)
	var blobs [][]byte
	for {
		size, err := binary.ReadUvarint(r)
		if errors.Is(err, io.EOF) {
			return blobs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("sink: read feature length: %w", err)
		}
		blob := make([]byte, size)
		if _, err := io.ReadFull(r, blob); err != nil {
			return nil, fmt.Errorf("sink: read feature blob: %w", err)
		}
		blobs = append(blobs, blob)
	}
}
