// Package ungapped performs X-drop, gap-free extension around a seed.
package ungapped

import (
	"errors"
	"fmt"

	"blastseed-core/hsp"
	"blastseed-core/matrix"
	"blastseed-core/seqbuf"
)

var ErrInvalidXDrop = errors.New("ungapped: x-drop out of range")

// Extender extends anchors in both directions and keeps the segment whose
// score clears the cutoff. One Extender belongs to one worker.
type Extender struct {
	m      matrix.Matrix
	xDrop  int
	cutoff int

	attempts int
	accepted int
}

// New returns an extender. xDrop must lie in [0, matrix.MaxXDrop].
func New(m matrix.Matrix, xDrop, cutoff int) (*Extender, error) {
	if xDrop < 0 || xDrop > matrix.MaxXDrop {
		return nil, fmt.Errorf("%w: %d", ErrInvalidXDrop, xDrop)
	}
	return &Extender{m: m, xDrop: xDrop, cutoff: cutoff}, nil
}

// Extend grows the alignment anchored at (qOff, sOff). The left pass starts
// one residue before the anchor; the right pass starts on it. Each pass
// keeps going through dips of up to xDrop below its best score and reports
// the boundary at that best score.
//
// Termination relies on the sentinel padding: stepping onto a sentinel
// scores matrix.SentinelScore, which always exceeds the drop-off. Anchors
// must lie within [0, Len()] of each buffer.
func (e *Extender) Extend(q, s seqbuf.Buffer, qOff, sOff int) (hsp.UngappedData, bool) {
	e.attempts++
	qp, sp := q.Padded(), s.Padded()
	qi, si := qOff+1, sOff+1

	score, leftBest, left := 0, 0, 0
	for i := 1; ; i++ {
		score += e.m.Score(qp[qi-i], sp[si-i])
		if score > leftBest {
			leftBest, left = score, i
		} else if leftBest-score > e.xDrop {
			break
		}
	}

	score, rightBest, right := 0, 0, 0
	for i := 0; ; i++ {
		score += e.m.Score(qp[qi+i], sp[si+i])
		if score > rightBest {
			rightBest, right = score, i+1
		} else if rightBest-score > e.xDrop {
			break
		}
	}

	ud := hsp.UngappedData{
		QStart: int32(qOff - left),
		SStart: int32(sOff - left),
		Length: int32(left + right),
		Score:  int32(leftBest + rightBest),
	}
	if int(ud.Score) < e.cutoff {
		return ud, false
	}
	e.accepted++
	return ud, true
}

func (e *Extender) XDrop() int  { return e.xDrop }
func (e *Extender) Cutoff() int { return e.cutoff }

// Attempts counts calls to Extend; Accepted counts those clearing the cutoff.
func (e *Extender) Attempts() int { return e.attempts }
func (e *Extender) Accepted() int { return e.accepted }
