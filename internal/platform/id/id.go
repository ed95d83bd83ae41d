package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Sequence hands out fixed ids in order; tests use it for stable log output.
type Sequence struct {
	IDs  []string
	next int
}

func (s *Sequence) New() string {
	if s.next >= len(s.IDs) {
		return ""
	}
	v := s.IDs[s.next]
	s.next++
	return v
}
