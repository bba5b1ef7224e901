package common

import (
	"testing"

	"blastseed-core/engine"

	"github.com/stretchr/testify/assert"
)

func TestSortHSPs(t *testing.T) {
	hs := []engine.HSP{
		{SubjectID: "b", SStart: 1},
		{SubjectID: "a", SStart: 9, Strand: "plus"},
		{SubjectID: "a", SStart: 9, Strand: "minus"},
		{SubjectID: "a", SStart: 2, Score: 10},
		{SubjectID: "a", SStart: 2, Score: 30},
	}
	SortHSPs(hs)

	type row struct {
		subject string
		start   int
		strand  string
		score   int
	}
	got := make([]row, len(hs))
	for i, h := range hs {
		got[i] = row{h.SubjectID, h.SStart, h.Strand, h.Score}
	}
	assert.Equal(t, []row{
		{"a", 2, "", 30},
		{"a", 2, "", 10},
		{"a", 9, "minus", 0},
		{"a", 9, "plus", 0},
		{"b", 1, "", 0},
	}, got)
}
