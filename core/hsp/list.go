// Package hsp holds the seeds that survive word finding for one subject
// and are handed to gapped extension.
package hsp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned for a list capacity below one.
	ErrInvalidCapacity = errors.New("hsp: capacity must be >= 1")

	// ErrListFull reports a fixed-capacity list that rejected a seed.
	ErrListFull = errors.New("hsp: initial hit list is full")
)

// UngappedData describes a gap-free alignment found around a seed.
// Offsets are residue offsets in the query/subject context.
type UngappedData struct {
	QStart int32
	SStart int32
	Length int32
	Score  int32
	Frame  int8
}

// QEnd is the exclusive query end.
func (u UngappedData) QEnd() int32 { return u.QStart + u.Length }

// SEnd is the exclusive subject end.
func (u UngappedData) SEnd() int32 { return u.SStart + u.Length }

// InitialHSP is one accepted seed. Ungapped is nil when extension was
// deferred to a later stage.
type InitialHSP struct {
	QOff     int32
	SOff     int32
	Ungapped *UngappedData
}

// Diagonal is SOff - QOff.
func (h InitialHSP) Diagonal() int32 { return h.SOff - h.QOff }

// List collects InitialHSPs for the subject currently being scanned. It is
// allocated once per worker and Reset between subjects.
//
// Ungapped data is stored by value in a parallel array so saving a seed
// never allocates once the list has warmed up.
type List struct {
	entries  []InitialHSP
	ungapped []UngappedData
	count    int
	growable bool
}

// NewList allocates a list with room for initialCapacity seeds. A fixed
// (non-growable) list reports overflow through Save instead of growing.
func NewList(initialCapacity int, growable bool) (*List, error) {
	if initialCapacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, initialCapacity)
	}
	return &List{
		entries:  make([]InitialHSP, initialCapacity),
		ungapped: make([]UngappedData, initialCapacity),
		growable: growable,
	}, nil
}

// Save appends a seed. It returns false, leaving the list untouched, when a
// fixed list is already at capacity.
func (l *List) Save(qOff, sOff int, ud *UngappedData) bool {
	if l.count == len(l.entries) {
		if !l.growable || l.entries == nil {
			return false
		}
		l.grow()
	}
	e := &l.entries[l.count]
	e.QOff, e.SOff, e.Ungapped = int32(qOff), int32(sOff), nil
	if ud != nil {
		l.ungapped[l.count] = *ud
		e.Ungapped = &l.ungapped[l.count]
	}
	l.count++
	return true
}

// grow doubles both arrays and re-points the ungapped references at the
// new backing array.
func (l *List) grow() {
	n := 2 * len(l.entries)
	entries := make([]InitialHSP, n)
	ungapped := make([]UngappedData, n)
	copy(entries, l.entries[:l.count])
	copy(ungapped, l.ungapped[:l.count])
	for i := 0; i < l.count; i++ {
		if entries[i].Ungapped != nil {
			entries[i].Ungapped = &ungapped[i]
		}
	}
	l.entries, l.ungapped = entries, ungapped
}

// Reset empties the list and keeps its storage.
func (l *List) Reset() { l.count = 0 }

// Release drops the backing storage. The list rejects all saves afterwards.
func (l *List) Release() {
	l.entries, l.ungapped, l.count = nil, nil, 0
}

func (l *List) Len() int       { return l.count }
func (l *List) Cap() int       { return len(l.entries) }
func (l *List) Growable() bool { return l.growable }

// At returns the i-th saved seed in insertion order.
func (l *List) At(i int) InitialHSP { return l.entries[i] }

// Hits returns the saved seeds in insertion order. The slice aliases the
// list and is only valid until the next Save or Reset.
func (l *List) Hits() []InitialHSP { return l.entries[:l.count] }
