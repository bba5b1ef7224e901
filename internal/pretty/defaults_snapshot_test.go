package pretty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptionsStable(t *testing.T) {
	d := DefaultOptions
	assert.Equal(t, 60, d.Width)
	assert.Equal(t, "|", d.ExactGlyph)
	assert.Equal(t, "¦", d.AmbigGlyph)
	assert.Equal(t, " ", d.MismatchGlyph)
	assert.True(t, d.ShowHeader)
}
