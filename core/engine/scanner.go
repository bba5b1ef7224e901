package engine

import (
	"errors"
	"fmt"

	"blastseed-core/diag"
	"blastseed-core/hsp"
	"blastseed-core/lookup"
	"blastseed-core/seqbuf"
	"blastseed-core/wordfinder"
)

// Stats are a Scanner's running totals.
type Stats struct {
	Subjects  int
	Residues  int64
	Replaced  int // subject bytes outside IUPAC read as N
	Overflows int // subject contexts cut short by a full list
	Rebases   int
	wordfinder.Result
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Subjects += o.Subjects
	s.Residues += o.Residues
	s.Replaced += o.Replaced
	s.Overflows += o.Overflows
	s.Rebases += o.Rebases
	s.Result.Add(o.Result)
}

// rebaser is implemented by both history tables.
type rebaser interface{ Rebases() int }

// Scanner holds the mutable per-worker state: one history and one hit list
// per query context, reused across subjects.
type Scanner struct {
	eng     *Engine
	finders []*wordfinder.Finder
	lists   []*hsp.List
	hits    lookup.Hits
	subject seqbuf.Buffer
	stats   Stats
}

// NewScanner allocates private scan state. It fails only when the history
// or hit list cannot be sized as configured.
func (e *Engine) NewScanner() (*Scanner, error) {
	sc := &Scanner{eng: e}
	for _, ctx := range e.contexts {
		fc := e.cfg.Config
		fc.Frame = ctx.frame
		f, err := wordfinder.New(fc, e.m, ctx.seq.Len())
		if err != nil {
			return nil, fmt.Errorf("engine: %s context: %w", ctx.strand, err)
		}
		l, err := hsp.NewList(e.cfg.ListCapacity, e.cfg.Growable)
		if err != nil {
			return nil, fmt.Errorf("engine: %s context: %w", ctx.strand, err)
		}
		sc.finders = append(sc.finders, f)
		sc.lists = append(sc.lists, l)
	}
	return sc, nil
}

// Scan searches one subject against every query context. HSPs come out per
// context in subject order.
//
// A full fixed-capacity list does not stop the scan: the HSPs found so far
// are returned together with an error wrapping hsp.ErrListFull.
func (sc *Scanner) Scan(subjectID string, subject []byte) ([]HSP, error) {
	if len(subject) > diag.MaxSubjectLen {
		return nil, fmt.Errorf("engine: subject %s (%d residues): %w", subjectID, len(subject), diag.ErrSubjectTooLong)
	}
	replaced := sc.subject.Load(subject)
	sc.stats.Subjects++
	sc.stats.Residues += int64(len(subject))
	sc.stats.Replaced += replaced

	var (
		out      []HSP
		overflow bool
	)
	for i, ctx := range sc.eng.contexts {
		f, list := sc.finders[i], sc.lists[i]
		sc.hits.Reset()
		ctx.table.Scan(sc.subject, &sc.hits)
		list.Reset()

		before := rebases(f.History())
		res, err := f.Find(ctx.seq, sc.subject, sc.hits, list)
		sc.stats.Result.Add(res)
		if n := rebases(f.History()) - before; n > 0 {
			sc.stats.Rebases += n
			sc.eng.log.Debug().Str("subject", subjectID).Str("strand", ctx.strand.String()).Msg("diagonal history rebased")
		}
		switch {
		case errors.Is(err, hsp.ErrListFull):
			overflow = true
			sc.stats.Overflows++
			sc.eng.log.Warn().Str("subject", subjectID).Str("strand", ctx.strand.String()).
				Int("saved", res.Saved).Msg("initial hit list full; remaining seeds dropped")
		case err != nil:
			return nil, fmt.Errorf("engine: subject %s %s strand: %w", subjectID, ctx.strand, err)
		}
		out = sc.collect(out, subjectID, ctx, list)
	}
	if overflow {
		return out, fmt.Errorf("engine: subject %s: %w", subjectID, hsp.ErrListFull)
	}
	return out, nil
}

func rebases(h wordfinder.History) int {
	if r, ok := h.(rebaser); ok {
		return r.Rebases()
	}
	return 0
}

// collect converts the saved seeds of one context into plus-strand HSPs.
func (sc *Scanner) collect(out []HSP, subjectID string, ctx queryContext, list *hsp.List) []HSP {
	qLen := ctx.seq.Len()
	span := ctx.table.Span()
	for _, h := range list.Hits() {
		qs, ss, n, score := int(h.QOff), int(h.SOff), span, 0
		if h.Ungapped != nil {
			qs, ss, n, score = int(h.Ungapped.QStart), int(h.Ungapped.SStart), int(h.Ungapped.Length), int(h.Ungapped.Score)
		}
		n = min(n, qLen-qs, sc.subject.Len()-ss)
		hit := HSP{
			QueryID:   sc.eng.queryID,
			SubjectID: subjectID,
			Strand:    ctx.strand.String(),
			QStart:    qs,
			QEnd:      qs + n,
			SStart:    ss,
			SEnd:      ss + n,
			Length:    n,
			Score:     score,
			Diagonal:  ss - qs,
			SeedQ:     int(h.QOff),
			SeedS:     int(h.SOff),
			Deferred:  h.Ungapped == nil,
		}
		if sc.eng.cfg.NeedSegments {
			hit.QuerySeg = ctx.seq.Slice(qs, qs+n)
			hit.SubjectSeg = sc.subject.Slice(ss, ss+n)
		}
		if ctx.strand == StrandMinus {
			hit.QStart, hit.QEnd = qLen-(qs+n), qLen-qs
			hit.SeedQ = max(qLen-int(h.QOff)-span, 0)
			hit.Diagonal = hit.SStart - hit.QStart
		}
		out = append(out, hit)
	}
	return out
}

// Stats returns the totals accumulated since the scanner was created.
func (sc *Scanner) Stats() Stats { return sc.stats }
