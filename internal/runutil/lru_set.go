// internal/runutil/lru_set.go: bounded dedupe utility
package runutil

import "container/list"

// DefaultLRUCap bounds dedupe memory when the caller passes 0.
const DefaultLRUCap = 200_000

// LRUSet is a size-bounded set with O(1) hit/insert. The least recently
// seen key is evicted first, so duplicates that arrive close together
// (neighbouring chunks) are still caught on long runs.
type LRUSet[K comparable] struct {
	cap int
	ll  *list.List // front = most recent; values are K
	m   map[K]*list.Element
}

func NewLRUSet[K comparable](capacity int) *LRUSet[K] {
	if capacity <= 0 {
		capacity = DefaultLRUCap
	}
	return &LRUSet[K]{cap: capacity, ll: list.New(), m: make(map[K]*list.Element)}
}

// Add inserts k and reports whether it was already present.
func (s *LRUSet[K]) Add(k K) bool {
	if e, ok := s.m[k]; ok {
		s.ll.MoveToFront(e)
		return true
	}
	s.m[k] = s.ll.PushFront(k)
	if s.ll.Len() > s.cap {
		tail := s.ll.Back()
		s.ll.Remove(tail)
		delete(s.m, tail.Value.(K))
	}
	return false
}

func (s *LRUSet[K]) Len() int { return s.ll.Len() }
