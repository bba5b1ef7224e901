package diag

import (
	"errors"
	"fmt"
)

var ErrInvalidStack = errors.New("diag: stack table needs buckets >= 1 and 1 <= depth <= max depth")

// StackEntry is one tracked diagonal in a StackTable bucket. Level is the
// origin-relative subject offset of the last touch; Length > 0 marks an
// explored extension covering [Level, Level+Length).
type StackEntry struct {
	Diagonal int32
	Level    int32
	Length   int32
}

// StackTable is the sparse history: a fixed number of buckets, each a small
// stack of diagonals scanned linearly. Memory is bounded by
// buckets × maxDepth regardless of how many diagonals a search produces,
// at the price of O(occupancy) work per hit.
type StackTable struct {
	stacks       [][]StackEntry
	maxDepth     int
	offset       int32
	window       int32
	multipleHits bool
	evictions    int
	rebases      int
}

// NewStackTable allocates numBuckets stacks of initialDepth entries that may
// grow by doubling up to maxDepth before eviction starts.
func NewStackTable(numBuckets, initialDepth, maxDepth, window int, multipleHits bool) (*StackTable, error) {
	if numBuckets < 1 || initialDepth < 1 || maxDepth < initialDepth {
		return nil, fmt.Errorf("%w: buckets=%d depth=%d max=%d", ErrInvalidStack, numBuckets, initialDepth, maxDepth)
	}
	if window < 0 || window > MaxSubjectLen {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	if int64(numBuckets)*int64(maxDepth) > MaxTableEntries {
		return nil, fmt.Errorf("%w: %d buckets × %d entries", ErrTableTooLarge, numBuckets, maxDepth)
	}
	stacks := make([][]StackEntry, numBuckets)
	for i := range stacks {
		stacks[i] = make([]StackEntry, 0, initialDepth)
	}
	return &StackTable{
		stacks:       stacks,
		maxDepth:     maxDepth,
		offset:       int32(window) + 1,
		window:       int32(window),
		multipleHits: multipleHits,
	}, nil
}

func (t *StackTable) bucket(diagonal int) int {
	b := diagonal % len(t.stacks)
	if b < 0 {
		b += len(t.stacks)
	}
	return b
}

func (t *StackTable) find(diagonal int) *StackEntry {
	st := t.stacks[t.bucket(diagonal)]
	d := int32(diagonal)
	for i := range st {
		if st[i].Diagonal == d {
			return &st[i]
		}
	}
	return nil
}

// Lookup returns the entry tracked for diagonal, if any.
func (t *StackTable) Lookup(diagonal int) (StackEntry, bool) {
	if e := t.find(diagonal); e != nil {
		return *e, true
	}
	return StackEntry{}, false
}

// Update inserts or overwrites the entry for diagonal. When the bucket is
// full it first reuses an entry that can no longer influence the scan, then
// grows, and finally evicts the least recently touched entry.
func (t *StackTable) Update(diagonal, sOff, length int) {
	abs := int32(sOff) + t.offset
	bi := t.bucket(diagonal)
	st := t.stacks[bi]
	d := int32(diagonal)

	reuse, oldest := -1, -1
	for i := range st {
		e := &st[i]
		if e.Diagonal == d {
			e.Level, e.Length = abs, int32(length)
			return
		}
		if reuse < 0 && t.expired(e, abs) {
			reuse = i
		}
		if oldest < 0 || e.Level < st[oldest].Level {
			oldest = i
		}
	}

	ne := StackEntry{Diagonal: d, Level: abs, Length: int32(length)}
	switch {
	case reuse >= 0:
		st[reuse] = ne
	case len(st) < cap(st):
		t.stacks[bi] = append(st, ne)
	case cap(st) < t.maxDepth:
		grown := make([]StackEntry, len(st), min(2*cap(st), t.maxDepth))
		copy(grown, st)
		t.stacks[bi] = append(grown, ne)
	default:
		st[oldest] = ne
		t.evictions++
	}
}

// expired reports whether e can no longer pair with or cover a hit at abs.
// Hits arrive in non-decreasing order, so expiry is permanent.
func (t *StackTable) expired(e *StackEntry, abs int32) bool {
	if e.Length > 0 {
		return abs >= e.Level+e.Length
	}
	return abs-e.Level > t.window
}

func (t *StackTable) pairs(e *StackEntry, abs int32) bool {
	if e == nil || e.Length > 0 {
		return false
	}
	d := abs - e.Level
	return d > 0 && d <= t.window
}

// CheckAndUpdate has the same contract as Table.CheckAndUpdate.
func (t *StackTable) CheckAndUpdate(diagonal, sOff int) bool {
	ok := !t.multipleHits || t.pairs(t.find(diagonal), int32(sOff)+t.offset)
	t.Update(diagonal, sOff, 0)
	return ok
}

// Peek applies the CheckAndUpdate test without recording the hit.
func (t *StackTable) Peek(diagonal, sOff int) bool {
	if !t.multipleHits {
		return true
	}
	return t.pairs(t.find(diagonal), int32(sOff)+t.offset)
}

// Covered reports whether sOff lies inside an extension recorded on diagonal.
func (t *StackTable) Covered(diagonal, sOff int) bool {
	e := t.find(diagonal)
	return e != nil && e.Length > 0 && int32(sOff)+t.offset < e.Level+e.Length
}

// MarkExtended records the explored subject range [sStart, sEnd).
func (t *StackTable) MarkExtended(diagonal, sStart, sEnd int) {
	t.Update(diagonal, sStart, max(sEnd-sStart, 1))
}

// Rebase empties every bucket and resets the origin when scanning a subject
// of subjectLen residues could overflow.
func (t *StackTable) Rebase(subjectLen int) bool {
	if int64(t.offset)+int64(subjectLen)+int64(t.window)+1 <= maxOrigin {
		return false
	}
	for i := range t.stacks {
		t.stacks[i] = t.stacks[i][:0]
	}
	t.offset = t.window + 1
	t.rebases++
	return true
}

// Advance moves the origin past a finished subject.
func (t *StackTable) Advance(subjectLen int) {
	if t.Rebase(subjectLen) {
		return
	}
	t.offset += int32(subjectLen) + t.window + 1
}

// Occupancy is the number of entries currently stored across all buckets.
func (t *StackTable) Occupancy() int {
	n := 0
	for _, st := range t.stacks {
		n += len(st)
	}
	return n
}

// BucketCap returns the allocated depth of the bucket holding diagonal.
func (t *StackTable) BucketCap(diagonal int) int { return cap(t.stacks[t.bucket(diagonal)]) }

func (t *StackTable) Buckets() int       { return len(t.stacks) }
func (t *StackTable) MaxDepth() int      { return t.maxDepth }
func (t *StackTable) Offset() int32      { return t.offset }
func (t *StackTable) Window() int        { return int(t.window) }
func (t *StackTable) MultipleHits() bool { return t.multipleHits }
func (t *StackTable) Evictions() int     { return t.evictions }
func (t *StackTable) Rebases() int       { return t.rebases }
