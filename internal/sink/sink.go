package sink

import (
	"fmt"

	"orderetl/internal/model"
)

// Sink persists a processed batch to one output.
type Sink interface {
	Name() string
	Write(rows []model.Processed) error
}

// Verifier is implemented by sinks that can check their own output
// after a write (CSV re-read, SQLite row count).
type Verifier interface {
	Verify() (int, error)
}

// Multi fans out writes to multiple sinks sequentially, failing on the
// first error.
type Multi struct {
	sinks []Sink
}

func NewMulti(ss ...Sink) *Multi {
	return &Multi{sinks: ss}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Write(rows []model.Processed) error {
	for _, s := range m.sinks {
		if err := s.Write(rows); err != nil {
			return fmt.Errorf("%s sink: %w", s.Name(), err)
		}
	}
	return nil
}

// Sinks exposes the underlying sinks for per-sink verification.
func (m *Multi) Sinks() []Sink { return m.sinks }
