// internal/common/sort.go
package common

import (
	"sort"

	"blastseed-core/engine"
)

// LessHSP defines a stable order for HSPs (for --sort): by subject, then
// subject position, then query position and strand, best score first on
// ties.
func LessHSP(a, b engine.HSP) bool {
	if a.QueryID != b.QueryID {
		return a.QueryID < b.QueryID
	}
	if a.SourceFile != b.SourceFile {
		return a.SourceFile < b.SourceFile
	}
	if a.SubjectID != b.SubjectID {
		return a.SubjectID < b.SubjectID
	}
	if a.SStart != b.SStart {
		return a.SStart < b.SStart
	}
	if a.QStart != b.QStart {
		return a.QStart < b.QStart
	}
	if a.Strand != b.Strand {
		return a.Strand < b.Strand
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Length < b.Length
}

func SortHSPs(hs []engine.HSP) {
	sort.SliceStable(hs, func(i, j int) bool { return LessHSP(hs[i], hs[j]) })
}
