// internal/output/rows.go
package output

import (
	"fmt"

	"blastseed-core/engine"
)

// FormatRowTSV returns the base columns for one HSP (no trailing newline).
func FormatRowTSV(h engine.HSP) string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d",
		h.SourceFile, h.QueryID, h.SubjectID, h.Strand,
		h.QStart, h.QEnd, h.SStart, h.SEnd,
		h.Length, h.Score, h.Diagonal,
	)
}
