package output

// Output formats accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "source_file\tquery_id\tsubject_id\tstrand\tq_start\tq_end\ts_start\ts_end\tlength\tscore\tdiagonal"
