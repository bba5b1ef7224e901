package diag

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// history is the surface shared by Table and StackTable.
type history interface {
	CheckAndUpdate(diagonal, sOff int) bool
	Peek(diagonal, sOff int) bool
	Covered(diagonal, sOff int) bool
	MarkExtended(diagonal, sStart, sEnd int)
	Rebase(subjectLen int) bool
	Advance(subjectLen int)
	Offset() int32
}

func TestNewTableSizesToPowerOfTwo(t *testing.T) {
	cases := []struct{ qlen, want int }{{0, 1}, {1, 1}, {8, 8}, {9, 16}, {1000, 1024}}
	for _, tc := range cases {
		tb, err := NewTable(tc.qlen, 4, true)
		require.NoError(t, err)
		assert.Equal(t, tc.want, tb.Size(), "qlen=%d", tc.qlen)
	}
}

func TestNewTableRejectsBadInput(t *testing.T) {
	_, err := NewTable(10, -1, true)
	assert.True(t, errors.Is(err, ErrInvalidWindow))
	_, err = NewTable(MaxTableEntries+1, 10, true)
	assert.True(t, errors.Is(err, ErrTableTooLarge))
}

// checkTwoHitProperty feeds random, ordered, distinct (diagonal, offset)
// hits and compares every answer with a model that remembers each hit.
func checkTwoHitProperty(t *testing.T, h history, window, diagSpan int) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	last := map[int]int{}
	seen := map[[2]int]bool{}
	s := 0
	for i := 0; i < 5000; i++ {
		s += rng.Intn(3)
		d := rng.Intn(diagSpan) - diagSpan/2
		if seen[[2]int{d, s}] {
			continue
		}
		seen[[2]int{d, s}] = true

		prev, ok := last[d]
		want := ok && s-prev > 0 && s-prev <= window
		assert.Equal(t, want, h.Peek(d, s), "peek hit %d: diag=%d s=%d", i, d, s)
		require.Equal(t, want, h.CheckAndUpdate(d, s), "hit %d: diag=%d s=%d prev=%d", i, d, s, prev)
		last[d] = s
	}
}

func TestTableTwoHitWindowProperty(t *testing.T) {
	const qlen, window = 64, 12
	tb, err := NewTable(qlen, window, true)
	require.NoError(t, err)
	checkTwoHitProperty(t, tb, window, tb.Size())
}

func TestTableSingleHitAlwaysQualifies(t *testing.T) {
	tb, err := NewTable(16, 0, false)
	require.NoError(t, err)
	for s := 0; s < 20; s++ {
		assert.True(t, tb.CheckAndUpdate(3, s))
	}
}

func TestTableAdvanceExpiresPreviousSubject(t *testing.T) {
	tb, err := NewTable(16, 100, true)
	require.NoError(t, err)

	tb.CheckAndUpdate(0, 5)
	tb.Advance(10)
	assert.False(t, tb.CheckAndUpdate(0, 0), "hit from previous subject must not pair")
	assert.True(t, tb.CheckAndUpdate(0, 50))
}

func TestTableCoveredAfterExtension(t *testing.T) {
	tb, err := NewTable(16, 8, true)
	require.NoError(t, err)

	tb.MarkExtended(2, 0, 30)
	assert.True(t, tb.Covered(2, 10))
	assert.True(t, tb.Covered(2, 29))
	assert.False(t, tb.Covered(2, 30))
	assert.False(t, tb.Covered(3, 10))
	assert.False(t, tb.CheckAndUpdate(2, 31), "an extension end is not a seed to pair with")
	assert.True(t, tb.CheckAndUpdate(2, 35))

	tb.MarkExtended(2, 0, 60)
	tb.Advance(100)
	assert.False(t, tb.Covered(2, 10), "coverage must not leak into the next subject")
}

func TestTableAliasingIsTolerated(t *testing.T) {
	tb, err := NewTable(8, 10, true)
	require.NoError(t, err)
	tb.CheckAndUpdate(1, 4)
	assert.True(t, tb.CheckAndUpdate(1+tb.Size(), 6), "aliased diagonals share a slot")
}

func TestTableRebaseNearInt32Limit(t *testing.T) {
	tb, err := NewTable(16, 10, true)
	require.NoError(t, err)
	assert.False(t, tb.Rebase(1000))

	tb.CheckAndUpdate(4, 7)
	tb.Advance(MaxSubjectLen)
	assert.Zero(t, tb.Rebases())
	assert.NotEqual(t, Entry{}, tb.Slot(4))

	tb.Advance(MaxSubjectLen)
	assert.Equal(t, 1, tb.Rebases())
	assert.Equal(t, int32(11), tb.Offset())
	assert.Equal(t, Entry{}, tb.Slot(4))
	assert.False(t, tb.CheckAndUpdate(4, 0), "cleared slots never pair")
	assert.True(t, tb.CheckAndUpdate(4, 3))
}

// advanceOrigin moves the origin to target through subjects no longer than
// MaxSubjectLen, without triggering a rebase.
func advanceOrigin(t *testing.T, h history, window, target int) {
	t.Helper()
	for int(h.Offset()) < target {
		h.Advance(min(MaxSubjectLen, target-int(h.Offset())-window-1))
	}
	require.Equal(t, int32(target), h.Offset())
}

func TestRebaseAheadOfLongSubject(t *testing.T) {
	const window = 10
	tb, err := NewTable(16, window, true)
	require.NoError(t, err)
	st, err := NewStackTable(8, 2, 4, window, true)
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		h    history
	}{{"dense", tb}, {"stack", st}} {
		t.Run(tc.name, func(t *testing.T) {
			advanceOrigin(t, tc.h, window, maxOrigin-2000)
			tc.h.MarkExtended(5, 0, 50)
			tc.h.Advance(100)

			// the next subject is far longer than the remaining headroom
			assert.True(t, tc.h.Rebase(200000))
			assert.Equal(t, int32(window+1), tc.h.Offset())
			assert.False(t, tc.h.Covered(5, 100000), "stale extension must not cover the new subject")
			assert.False(t, tc.h.CheckAndUpdate(5, 100000))
			assert.True(t, tc.h.CheckAndUpdate(5, 100005))
			assert.False(t, tc.h.Rebase(200000), "fresh origin has room")
		})
	}
}
