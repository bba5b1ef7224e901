// Package stats accumulates the run summary printed with --summary and
// stamped into JSON output.
package stats

import (
	"math"
	"sort"

	"blastseed-core/engine"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Report is the finished summary of one run.
type Report struct {
	RunID   string
	QueryID string

	Records          int // subject records scanned
	SubjectsWithHits int
	HSPs             int
	PerStrand        map[string]int

	MeanScore   float64
	StdDevScore float64
	MedianScore float64
	MaxScore    int

	Residues  int64
	Replaced  int
	Seeds     int // lookup hits offered to the word finder
	Extended  int
	Covered   int
	Clamped   int
	Overflows int
	Rebases   int
}

// Summary collects per-HSP observations. It is not safe for concurrent use;
// the pipeline calls visit on one goroutine.
type Summary struct {
	runID     string
	subjects  *roaring.Bitmap
	scores    []float64
	perStrand map[string]int
	max       int
}

func New() *Summary {
	return &Summary{
		runID:     uuid.NewString(),
		subjects:  roaring.New(),
		perStrand: make(map[string]int, 2),
	}
}

func (s *Summary) RunID() string { return s.runID }

// Observe records one reported HSP found on subject record ordinal record.
func (s *Summary) Observe(record uint32, h engine.HSP) {
	s.subjects.Add(record)
	s.scores = append(s.scores, float64(h.Score))
	s.perStrand[h.Strand]++
	if len(s.scores) == 1 || h.Score > s.max {
		s.max = h.Score
	}
}

// Reset drops the observations and keeps the run ID, so each query of a
// run reports on its own.
func (s *Summary) Reset() {
	s.subjects.Clear()
	s.scores = s.scores[:0]
	s.perStrand = make(map[string]int, 2)
	s.max = 0
}

// HitRecords lists the ordinals of records with at least one HSP.
func (s *Summary) HitRecords() []uint32 { return s.subjects.ToArray() }

// Report folds the observations together with the scanners' counters.
func (s *Summary) Report(queryID string, records int, st engine.Stats) Report {
	r := Report{
		RunID:            s.runID,
		QueryID:          queryID,
		Records:          records,
		SubjectsWithHits: int(s.subjects.GetCardinality()),
		HSPs:             len(s.scores),
		PerStrand:        s.perStrand,
		MaxScore:         s.max,
		Residues:         st.Residues,
		Replaced:         st.Replaced,
		Seeds:            st.Hits,
		Extended:         st.Extended,
		Covered:          st.Covered,
		Clamped:          st.Clamped,
		Overflows:        st.Overflows,
		Rebases:          st.Rebases,
	}
	if len(s.scores) == 0 {
		return r
	}
	mean, std := stat.MeanStdDev(s.scores, nil)
	if math.IsNaN(std) {
		std = 0
	}
	sorted := append([]float64(nil), s.scores...)
	sort.Float64s(sorted)
	r.MeanScore, r.StdDevScore = mean, std
	r.MedianScore = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return r
}
