package prize

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
)

// Source yields uniform draws in [0,1).
type Source interface {
	Float64() float64
}

// CryptoSource draws from crypto/rand. Safe for concurrent use.
type CryptoSource struct{}

func (CryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("prize: crypto source unavailable: " + err.Error())
	}
	// 53 random bits give every representable step in [0,1).
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// SequenceSource replays a fixed list of draws, wrapping around. Used to
// script outcomes in tests.
type SequenceSource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequenceSource(values ...float64) *SequenceSource {
	if len(values) == 0 {
		panic("prize: empty sequence source")
	}
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
