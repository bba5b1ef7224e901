package runutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChunking(t *testing.T) {
	cs, ov, w := ValidateChunking(0, 50)
	assert.Zero(t, cs)
	assert.Zero(t, ov)
	assert.Empty(t, w)

	cs, ov, w = ValidateChunking(50, 50)
	assert.Zero(t, cs, "chunk <= query length disables chunking")
	assert.Zero(t, ov)
	assert.Len(t, w, 1)

	cs, ov, w = ValidateChunking(1000, 50)
	assert.Equal(t, 1000, cs)
	assert.Equal(t, 50, ov)
	assert.Empty(t, w)
}

func TestEffectiveThreads(t *testing.T) {
	assert.Equal(t, 3, EffectiveThreads(3, 8))
	assert.Equal(t, 8, EffectiveThreads(0, 8))
	assert.Equal(t, 1, EffectiveThreads(-1, 0))
}

func TestLRUSetEvictsLeastRecent(t *testing.T) {
	s := NewLRUSet[int](2)
	assert.False(t, s.Add(1))
	assert.False(t, s.Add(2))
	assert.True(t, s.Add(1)) // 1 is now most recent
	assert.False(t, s.Add(3)) // evicts 2
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(2))
}
