// Package lookup finds exact word matches between a query and a subject.
//
// Tables are built once per query and are read-only afterwards, so a single
// table may be shared by every scanning worker.
package lookup

import (
	"errors"

	"blastseed-core/seqbuf"
)

var (
	ErrBadWordSize = errors.New("lookup: word size out of range")
	ErrBadTemplate = errors.New("lookup: invalid discontiguous template")
)

// Table produces seed hits for one subject. Implementations append hits in
// non-decreasing subject offset order.
type Table interface {
	Scan(subject seqbuf.Buffer, hits *Hits)
	// Span is the number of subject residues a hit covers.
	Span() int
}

// Hits holds parallel query/subject offsets of word matches.
type Hits struct {
	Q []int32
	S []int32
}

func (h *Hits) Add(qOff, sOff int) {
	h.Q = append(h.Q, int32(qOff))
	h.S = append(h.S, int32(sOff))
}

// Reset keeps the backing arrays for the next subject.
func (h *Hits) Reset() {
	h.Q = h.Q[:0]
	h.S = h.S[:0]
}

func (h *Hits) Len() int { return len(h.S) }
