package sink

import "github.com/flatland/flatqa"

// MemorySink collects examples in memory. Intended for tests and small
// programmatic runs.
type MemorySink struct {
	Examples []flatqa.Example
}

var _ flatqa.Sink = (*MemorySink)(nil)

// Append stores the example.
func (s *MemorySink) Append(ex flatqa.Example) error {
	s.Examples = append(s.Examples, ex)
	return nil
}
