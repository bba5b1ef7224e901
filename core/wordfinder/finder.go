package wordfinder

import (
	"fmt"
	"math"

	"blastseed-core/diag"
	"blastseed-core/hsp"
	"blastseed-core/lookup"
	"blastseed-core/matrix"
	"blastseed-core/seqbuf"
	"blastseed-core/ungapped"
)

// History is the per-diagonal memory consulted for every hit.
// *diag.Table and *diag.StackTable implement it.
type History interface {
	CheckAndUpdate(diagonal, sOff int) bool
	Peek(diagonal, sOff int) bool
	Covered(diagonal, sOff int) bool
	MarkExtended(diagonal, sStart, sEnd int)
	Rebase(subjectLen int) bool
	Advance(subjectLen int)
}

// State is the finder's position in its per-subject cycle.
type State uint8

const (
	Idle State = iota
	Scanning
	ConsultHistory
	Extend
	Save
	SubjectDone
	RollHistoryOrigin
)

var stateNames = [...]string{"idle", "scanning", "consult-history", "extend", "save", "subject-done", "roll-history-origin"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Result summarises one Find call.
type Result struct {
	Hits     int // hits consumed
	Saved    int // seeds written to the list
	Extended int // ungapped extensions attempted
	Covered  int // hits skipped inside an explored extension
	Clamped  int // out-of-range hits clamped into the sequences
	Overflow bool
}

// Add accumulates o into r.
func (r *Result) Add(o Result) {
	r.Hits += o.Hits
	r.Saved += o.Saved
	r.Extended += o.Extended
	r.Covered += o.Covered
	r.Clamped += o.Clamped
	r.Overflow = r.Overflow || o.Overflow
}

// Finder runs one word finding variant for one query context. It owns its
// history and must not be shared between goroutines.
type Finder struct {
	cfg     Config
	drift   int
	hist    History
	ext     *ungapped.Extender
	state   State
	observe func(State)
}

// New builds a finder with the history the configuration calls for: the
// dense table sized to the query, or the sparse stack table.
func New(cfg Config, m matrix.Matrix, queryLen int) (*Finder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()
	var (
		h   History
		err error
	)
	if cfg.usesSparse() {
		h, err = diag.NewStackTable(cfg.Buckets, min(4, cfg.StackDepth), cfg.StackDepth, cfg.Window, cfg.MultipleHits)
	} else {
		h, err = diag.NewTable(queryLen+cfg.Window, cfg.Window, cfg.MultipleHits)
	}
	if err != nil {
		return nil, fmt.Errorf("wordfinder: history: %w", err)
	}
	return NewWithHistory(cfg, m, h)
}

// NewWithHistory builds a finder around a caller-supplied history.
func NewWithHistory(cfg Config, m matrix.Matrix, h History) (*Finder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ext, err := ungapped.New(m, cfg.XDrop, cfg.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("wordfinder: %w", err)
	}
	cfg = cfg.Normalized()
	return &Finder{cfg: cfg, drift: cfg.EffectiveDrift(), hist: h, ext: ext}, nil
}

func (f *Finder) Config() Config               { return f.cfg }
func (f *Finder) History() History             { return f.hist }
func (f *Finder) Extender() *ungapped.Extender { return f.ext }
func (f *Finder) State() State                 { return f.state }

// Observe registers fn to be called on every state transition.
func (f *Finder) Observe(fn func(State)) { f.observe = fn }

func (f *Finder) enter(s State) {
	f.state = s
	if f.observe != nil {
		f.observe(s)
	}
}

// Find processes the hits of one subject and appends surviving seeds to
// list. Hits must be ordered by subject offset. The history is rebased
// first if the subject would overflow its origin, and advanced past the
// subject before Find returns, including on error.
//
// When a fixed-capacity list fills up Find stops, sets Result.Overflow and
// returns an error wrapping hsp.ErrListFull; the seeds saved so far remain
// in the list.
func (f *Finder) Find(q, s seqbuf.Buffer, hits lookup.Hits, list *hsp.List) (Result, error) {
	f.enter(Scanning)
	res := Result{}
	qLen, sLen := q.Len(), s.Len()
	f.hist.Rebase(sLen)
	prev := math.MinInt

	for i := range hits.S {
		qOff, sOff := int(hits.Q[i]), int(hits.S[i])
		if qOff < 0 || qOff >= qLen || sOff < 0 || sOff >= sLen {
			if strictPreconditions {
				panic(fmt.Sprintf("wordfinder: hit %d (q=%d s=%d) outside query %d / subject %d", i, qOff, sOff, qLen, sLen))
			}
			res.Clamped++
			if qLen == 0 || sLen == 0 {
				continue
			}
			qOff = min(max(qOff, 0), qLen-1)
			sOff = min(max(sOff, 0), sLen-1)
		}
		if sOff < prev {
			f.finish(sLen)
			return res, fmt.Errorf("%w: hit %d at %d follows %d", ErrUnorderedHits, i, sOff, prev)
		}
		prev = sOff
		res.Hits++

		f.enter(ConsultHistory)
		d := sOff - qOff
		if f.hist.Covered(d, sOff) {
			res.Covered++
			continue
		}
		if !f.qualifies(d, sOff) {
			continue
		}

		var ud *hsp.UngappedData
		if !f.cfg.DeferExtension {
			f.enter(Extend)
			res.Extended++
			data, ok := f.ext.Extend(q, s, qOff, sOff)
			f.hist.MarkExtended(d, int(data.SStart), int(data.SEnd()))
			if !ok {
				continue
			}
			data.Frame = f.cfg.Frame
			ud = &data
		}

		f.enter(Save)
		if !list.Save(qOff, sOff, ud) {
			res.Overflow = true
			f.finish(sLen)
			return res, fmt.Errorf("wordfinder: %d seeds saved: %w", res.Saved, hsp.ErrListFull)
		}
		res.Saved++
	}
	f.finish(sLen)
	return res, nil
}

// qualifies records the hit and reports whether it pairs with an earlier
// one, on its own diagonal first and then on neighbours d+1, d-1, d+2, ...
// out to the drift.
func (f *Finder) qualifies(d, sOff int) bool {
	if f.hist.CheckAndUpdate(d, sOff) {
		return true
	}
	for k := 1; k <= f.drift; k++ {
		if f.hist.Peek(d+k, sOff) || f.hist.Peek(d-k, sOff) {
			return true
		}
	}
	return false
}

func (f *Finder) finish(subjectLen int) {
	f.enter(SubjectDone)
	f.enter(RollHistoryOrigin)
	f.hist.Advance(subjectLen)
	f.enter(Idle)
}
