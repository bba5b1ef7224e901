// Package diag tracks the most recent seed hit per diagonal so word finders
// can apply the two-hit heuristic and skip hits that fall inside regions an
// earlier extension already explored.
//
// Both tables store subject offsets relative to a rolling origin. Moving to
// the next subject only advances the origin far enough that every stored
// entry is out of the pairing window; the arrays are physically cleared only
// when the origin nears the int32 limit.
package diag

import (
	"errors"
	"fmt"
	"math"
)

// Entry levels.
const (
	// LevelSeed marks LastHit as the subject offset of a recorded seed.
	LevelSeed uint8 = iota
	// LevelExtended marks LastHit as the end of an explored extension.
	LevelExtended
)

const (
	// MaxTableEntries caps the dense array (1 GiB of entries at 8 bytes).
	MaxTableEntries = 1 << 27

	// MaxSubjectLen is the longest subject a table can scan in one pass.
	MaxSubjectLen = 1 << 30

	// maxOrigin keeps origin+offset representable in int32.
	maxOrigin = math.MaxInt32 - 1024
)

var (
	ErrTableTooLarge  = errors.New("diag: table exceeds memory ceiling")
	ErrInvalidWindow  = errors.New("diag: window must be >= 0")
	ErrSubjectTooLong = errors.New("diag: subject exceeds maximum length")
)

// Entry is one diagonal slot.
type Entry struct {
	LastHit int32
	Level   uint8
}

// Table is the dense per-diagonal history, sized to the query.
// Diagonals are reduced modulo the table size; unrelated diagonals that
// alias onto one slot only cost a spurious extension or a missed pairing,
// and extension remains the authoritative filter.
type Table struct {
	entries      []Entry
	mask         int
	offset       int32
	window       int32
	multipleHits bool
	rebases      int
}

// NewTable sizes the array to the smallest power of two >= queryLen.
func NewTable(queryLen, window int, multipleHits bool) (*Table, error) {
	if window < 0 || window > MaxSubjectLen {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	size := nextPow2(queryLen)
	if size > MaxTableEntries {
		return nil, fmt.Errorf("%w: query length %d needs %d slots", ErrTableTooLarge, queryLen, size)
	}
	return &Table{
		entries:      make([]Entry, size),
		mask:         size - 1,
		offset:       int32(window) + 1,
		window:       int32(window),
		multipleHits: multipleHits,
	}, nil
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func (t *Table) slot(diagonal int) *Entry { return &t.entries[diagonal&t.mask] }

// CheckAndUpdate records a hit at sOff on diagonal and reports whether it
// qualifies for extension. With multiple hits enabled a hit qualifies only
// when the slot holds a seed 1..window residues behind it.
func (t *Table) CheckAndUpdate(diagonal, sOff int) bool {
	e := t.slot(diagonal)
	abs := int32(sOff) + t.offset
	ok := !t.multipleHits || t.pairs(e, abs)
	e.LastHit, e.Level = abs, LevelSeed
	return ok
}

// Peek applies the CheckAndUpdate test without recording the hit.
func (t *Table) Peek(diagonal, sOff int) bool {
	if !t.multipleHits {
		return true
	}
	return t.pairs(t.slot(diagonal), int32(sOff)+t.offset)
}

func (t *Table) pairs(e *Entry, abs int32) bool {
	if e.Level != LevelSeed {
		return false
	}
	d := abs - e.LastHit
	return d > 0 && d <= t.window
}

// Covered reports whether sOff lies inside an extension already recorded on
// this diagonal.
func (t *Table) Covered(diagonal, sOff int) bool {
	e := t.slot(diagonal)
	return e.Level == LevelExtended && int32(sOff)+t.offset < e.LastHit
}

// MarkExtended records that the diagonal has been explored up to sEnd
// (exclusive). The dense table only needs the end.
func (t *Table) MarkExtended(diagonal, _, sEnd int) {
	e := t.slot(diagonal)
	e.LastHit, e.Level = int32(sEnd)+t.offset, LevelExtended
}

// Rebase clears the array and resets the origin when scanning a subject of
// subjectLen residues could overflow. It reports whether it did so.
func (t *Table) Rebase(subjectLen int) bool {
	if int64(t.offset)+int64(subjectLen)+int64(t.window)+1 <= maxOrigin {
		return false
	}
	clear(t.entries)
	t.offset = t.window + 1
	t.rebases++
	return true
}

// Advance moves the origin past a finished subject so none of its entries
// can pair with hits in the next one.
func (t *Table) Advance(subjectLen int) {
	if t.Rebase(subjectLen) {
		return
	}
	t.offset += int32(subjectLen) + t.window + 1
}

// Slot returns the raw entry for a diagonal.
func (t *Table) Slot(diagonal int) Entry { return *t.slot(diagonal) }

func (t *Table) Size() int          { return len(t.entries) }
func (t *Table) Offset() int32      { return t.offset }
func (t *Table) Window() int        { return int(t.window) }
func (t *Table) MultipleHits() bool { return t.multipleHits }
func (t *Table) Rebases() int       { return t.rebases }
