package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"blastseed-core/engine"
	"blastseed/internal/stats"
	"blastseed/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTSVHeaderStable(t *testing.T) {
	const want = "source_file\tquery_id\tsubject_id\tstrand\tq_start\tq_end\ts_start\ts_end\tlength\tscore\tdiagonal"
	assert.Equal(t, want, TSVHeader)
	assert.Len(t, strings.Split(FormatRowTSV(engine.HSP{}), "\t"), len(strings.Split(TSVHeader, "\t")))
}

func TestFormatsStable(t *testing.T) {
	assert.Equal(t, "text", FormatText)
	assert.Equal(t, "json", FormatJSON)
	assert.Equal(t, "jsonl", FormatJSONL)
}

var sample = engine.HSP{
	QueryID: "q", SubjectID: "s", Strand: "minus", SourceFile: "db.fa",
	QStart: 1, QEnd: 9, SStart: 10, SEnd: 18, Length: 8, Score: 16, Diagonal: 9,
}

func TestWriteTextWithRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := WriteText(&buf, []engine.HSP{sample}, true, func(engine.HSP) string { return "# block\n" })
	require.NoError(t, err)
	assert.Equal(t, TSVHeader+"\n"+"db.fa\tq\ts\tminus\t1\t9\t10\t18\t8\t16\t9\n# block\n", buf.String())
}

func TestStreamTextNoHeader(t *testing.T) {
	in := make(chan engine.HSP, 2)
	in <- sample
	in <- sample
	close(in)
	var buf bytes.Buffer
	require.NoError(t, StreamText(&buf, in, false, nil))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
	assert.NotContains(t, buf.String(), "source_file")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []engine.HSP{sample}, "run-1"))
	var got []api.HSPV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "run-1", got[0].RunID)
	assert.Equal(t, 10, got[0].SStart)
	assert.Equal(t, "minus", got[0].Strand)
	assert.NotContains(t, buf.String(), "deferred")
}

func TestWriteSummary(t *testing.T) {
	r := stats.Report{RunID: "r", QueryID: "q", Records: 4, SubjectsWithHits: 1, HSPs: 2,
		PerStrand: map[string]int{"plus": 1, "minus": 1}, MeanScore: 15, MaxScore: 20}

	var txt bytes.Buffer
	require.NoError(t, WriteSummary(&txt, FormatText, r))
	assert.Contains(t, txt.String(), "# records\t4\n")
	assert.Contains(t, txt.String(), "# score_mean\t15.00\n")
	assert.Contains(t, txt.String(), "# hsps_minus\t1\n# hsps_plus\t1\n")

	var js bytes.Buffer
	require.NoError(t, WriteSummary(&js, FormatJSONL, r))
	var got api.SummaryV1
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	assert.Equal(t, 2, got.HSPs)
	assert.Equal(t, 20, got.MaxScore)
}
