// pkg/api/hsp_v1.go
package api

// HSPV1 is the stable JSON/JSONL schema for one ungapped segment pair.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// Coordinates are 0-based, half-open, on the plus strand of both sequences.
type HSPV1 struct {
	QueryID    string `json:"query_id"`
	SubjectID  string `json:"subject_id"`
	Strand     string `json:"strand"` // "plus" | "minus"
	QStart     int    `json:"q_start"`
	QEnd       int    `json:"q_end"`
	SStart     int    `json:"s_start"`
	SEnd       int    `json:"s_end"`
	Length     int    `json:"length"`
	Score      int    `json:"score"`
	Diagonal   int    `json:"diagonal"`
	SeedQ      int    `json:"seed_q"`
	SeedS      int    `json:"seed_s"`
	Deferred   bool   `json:"deferred,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
	RunID      string `json:"run_id,omitempty"`
}

// SummaryV1 is the --summary record.
type SummaryV1 struct {
	RunID            string         `json:"run_id"`
	QueryID          string         `json:"query_id"`
	Records          int            `json:"records"`
	SubjectsWithHits int            `json:"subjects_with_hits"`
	HSPs             int            `json:"hsps"`
	PerStrand        map[string]int `json:"per_strand,omitempty"`
	MeanScore        float64        `json:"mean_score"`
	StdDevScore      float64        `json:"stddev_score"`
	MedianScore      float64        `json:"median_score"`
	MaxScore         int            `json:"max_score"`
	Residues         int64          `json:"residues"`
	Replaced         int            `json:"replaced,omitempty"`
	Seeds            int            `json:"seeds"`
	Extended         int            `json:"extended"`
	Covered          int            `json:"covered"`
	Clamped          int            `json:"clamped,omitempty"`
	Overflows        int            `json:"overflows,omitempty"`
	Rebases          int            `json:"rebases,omitempty"`
}
