package engine

// HSP is a gap-free segment pair that survived word finding. Coordinates
// are 0-based and half-open on the plus strand of both sequences.
type HSP struct {
	QueryID   string `json:"query_id"`
	SubjectID string `json:"subject_id"`
	Strand    string `json:"strand"` // "plus" | "minus"
	QStart    int    `json:"q_start"`
	QEnd      int    `json:"q_end"`
	SStart    int    `json:"s_start"`
	SEnd      int    `json:"s_end"`
	Length    int    `json:"length"`
	Score     int    `json:"score"`
	Diagonal  int    `json:"diagonal"`

	// seed that triggered the extension
	SeedQ int `json:"seed_q"`
	SeedS int `json:"seed_s"`

	// Deferred marks a raw seed saved without extension.
	Deferred bool `json:"deferred,omitempty"`

	// SourceFile is filled by callers that scan several volumes.
	SourceFile string `json:"source_file,omitempty"`

	// pretty support: aligned segments, query in subject orientation
	QuerySeg   string `json:"-"`
	SubjectSeg string `json:"-"`
}
