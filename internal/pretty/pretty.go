package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"blastseed-core/engine"
)

// Options control the ASCII rendering.
type Options struct {
	// Columns per alignment row. If <=0, use default (60).
	Width int

	// Glyphs
	ExactGlyph    string // default "|"
	AmbigGlyph    string // N on either side; default "¦"
	MismatchGlyph string // default " "

	// Header line with ids, strand and score above the block.
	ShowHeader bool
}

// DefaultOptions is the look used by --pretty.
var DefaultOptions = Options{
	Width:         60,
	ExactGlyph:    "|",
	AmbigGlyph:    "¦",
	MismatchGlyph: " ",
	ShowHeader:    true,
}

const (
	defaultWidth = 60
	linePrefix   = "# "
)

// RenderHSP draws h with DefaultOptions.
func RenderHSP(h engine.HSP) string { return RenderHSPWithOptions(h, DefaultOptions) }

// RenderHSPWithOptions draws a query/subject block for h. It needs the
// aligned segments (engine.Config.NeedSegments) and returns "" without them.
// The query row is shown in subject orientation; on the minus strand its
// coordinates count down.
func RenderHSPWithOptions(h engine.HSP, opt Options) string {
	q, s := h.QuerySeg, h.SubjectSeg
	if q == "" || len(q) != len(s) {
		return ""
	}
	width := opt.Width
	if width <= 0 {
		width = defaultWidth
	}
	bars := matchColumns(q, s, opt)
	numW := len(strconv.Itoa(max(h.QEnd, h.SEnd)))
	pad := strings.Repeat(" ", numW)

	var b strings.Builder
	if opt.ShowHeader {
		fmt.Fprintf(&b, "%s%s vs %s strand=%s score=%d length=%d\n",
			linePrefix, h.QueryID, h.SubjectID, h.Strand, h.Score, h.Length)
	}
	for off := 0; off < len(q); off += width {
		end := min(off+width, len(q))
		qFrom, qTo := queryCoords(h, off, end)
		fmt.Fprintf(&b, "%sQuery %*d %s %d\n", linePrefix, numW, qFrom, q[off:end], qTo)
		fmt.Fprintf(&b, "%s      %s %s\n", linePrefix, pad, strings.Join(bars[off:end], ""))
		fmt.Fprintf(&b, "%sSbjct %*d %s %d\n", linePrefix, numW, h.SStart+off+1, s[off:end], h.SStart+end)
	}
	return b.String()
}

// queryCoords returns 1-based inclusive query positions for columns
// [off, end) of the block.
func queryCoords(h engine.HSP, off, end int) (int, int) {
	if h.Strand == "minus" {
		return h.QEnd - off, h.QEnd - end + 1
	}
	return h.QStart + off + 1, h.QStart + end
}

func matchColumns(q, s string, opt Options) []string {
	cols := make([]string, len(q))
	for i := range cols {
		switch {
		case q[i] == 'N' || s[i] == 'N':
			cols[i] = opt.AmbigGlyph
		case q[i] == s[i]:
			cols[i] = opt.ExactGlyph
		default:
			cols[i] = opt.MismatchGlyph
		}
	}
	return cols
}
