package joint

import (
	"fmt"
	"sync"
)

// IDSource hands out document-unique identifiers.
type IDSource interface {
	NextID(prefix string) string
}

// Sequence is an IDSource numbering each prefix independently: slot1,
// slot2, ... It is safe for concurrent use.
type Sequence struct {
	mu   sync.Mutex
	next map[string]int
}

// NewSequence returns an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{next: make(map[string]int)}
}

// Reserve makes NextID skip the numbers up to n for prefix.
func (s *Sequence) Reserve(prefix string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.next[prefix] {
		s.next[prefix] = n
	}
}

func (s *Sequence) NextID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[prefix]++
	return fmt.Sprintf("%s%d", prefix, s.next[prefix])
}
