package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"blastseed/internal/stats"
	"blastseed/pkg/api"
)

func ToAPISummary(r stats.Report) api.SummaryV1 {
	return api.SummaryV1{
		RunID:            r.RunID,
		QueryID:          r.QueryID,
		Records:          r.Records,
		SubjectsWithHits: r.SubjectsWithHits,
		HSPs:             r.HSPs,
		PerStrand:        r.PerStrand,
		MeanScore:        r.MeanScore,
		StdDevScore:      r.StdDevScore,
		MedianScore:      r.MedianScore,
		MaxScore:         r.MaxScore,
		Residues:         r.Residues,
		Replaced:         r.Replaced,
		Seeds:            r.Seeds,
		Extended:         r.Extended,
		Covered:          r.Covered,
		Clamped:          r.Clamped,
		Overflows:        r.Overflows,
		Rebases:          r.Rebases,
	}
}

// WriteSummary prints r as "# key value" lines for text output or as one
// compact JSON object otherwise.
func WriteSummary(w io.Writer, format string, r stats.Report) error {
	if format != FormatText {
		return json.NewEncoder(w).Encode(ToAPISummary(r))
	}
	rows := [][2]any{
		{"run_id", r.RunID},
		{"query_id", r.QueryID},
		{"records", r.Records},
		{"subjects_with_hits", r.SubjectsWithHits},
		{"hsps", r.HSPs},
		{"score_mean", fmt.Sprintf("%.2f", r.MeanScore)},
		{"score_stddev", fmt.Sprintf("%.2f", r.StdDevScore)},
		{"score_median", fmt.Sprintf("%.1f", r.MedianScore)},
		{"score_max", r.MaxScore},
		{"residues", r.Residues},
		{"seeds", r.Seeds},
		{"extended", r.Extended},
		{"covered", r.Covered},
	}
	if r.Overflows > 0 {
		rows = append(rows, [2]any{"overflows", r.Overflows})
	}
	strands := make([]string, 0, len(r.PerStrand))
	for s := range r.PerStrand {
		strands = append(strands, s)
	}
	sort.Strings(strands)
	for _, s := range strands {
		rows = append(rows, [2]any{"hsps_" + s, r.PerStrand[s]})
	}
	for _, kv := range rows {
		if _, err := fmt.Fprintf(w, "# %s\t%v\n", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
