// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"blastseed-core/engine"
	"blastseed/pkg/api"
)

// ToAPIHSP converts a domain HSP to the stable wire schema (v1).
func ToAPIHSP(h engine.HSP, runID string) api.HSPV1 {
	return api.HSPV1{
		QueryID:    h.QueryID,
		SubjectID:  h.SubjectID,
		Strand:     h.Strand,
		QStart:     h.QStart,
		QEnd:       h.QEnd,
		SStart:     h.SStart,
		SEnd:       h.SEnd,
		Length:     h.Length,
		Score:      h.Score,
		Diagonal:   h.Diagonal,
		SeedQ:      h.SeedQ,
		SeedS:      h.SeedS,
		Deferred:   h.Deferred,
		SourceFile: h.SourceFile,
		RunID:      runID,
	}
}

func toAPIHSPs(list []engine.HSP, runID string) []api.HSPV1 {
	out := make([]api.HSPV1, 0, len(list))
	for _, h := range list {
		out = append(out, ToAPIHSP(h, runID))
	}
	return out
}

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteJSON writes a single JSON array of v1 HSPs (pretty-indented).
func WriteJSON(w io.Writer, list []engine.HSP, runID string) error {
	return EncodePretty(w, toAPIHSPs(list, runID))
}
