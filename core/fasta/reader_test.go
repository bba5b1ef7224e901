package fasta

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plain = `>seq1 first record
ACGT
acgt
>seq2
NNnn
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func compress(t *testing.T, c Compression, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Zstd:
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = zw
	case LZ4:
		w = lz4.NewWriter(&buf)
	default:
		return []byte(data)
	}
	_, err := io.WriteString(w, data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func collect(t *testing.T, path string, chunk, overlap int) []Record {
	t.Helper()
	var recs []Record
	err := StreamChunksPathCtx(context.Background(), path, chunk, overlap, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	require.NoError(t, err)
	return recs
}

func TestStreamCompressedVolumes(t *testing.T) {
	for _, c := range []Compression{Plain, Gzip, Zstd, LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			// no telling suffix: detection must come from the magic bytes
			path := writeFile(t, "volume.fa", compress(t, c, plain))
			recs := collect(t, path, 0, 0)
			require.Len(t, recs, 2)
			assert.Equal(t, "seq1", recs[0].ID)
			assert.Equal(t, "ACGTacgt", string(recs[0].Seq))
			assert.Equal(t, "seq2", recs[1].ID)
			assert.Equal(t, "NNnn", string(recs[1].Seq))
		})
	}
}

func TestDetectBySuffix(t *testing.T) {
	assert.Equal(t, Gzip, detect(nil, "x.fa.gz"))
	assert.Equal(t, Zstd, detect([]byte(">s"), "x.fa.zst"))
	assert.Equal(t, LZ4, detect(nil, "x.lz4"))
	assert.Equal(t, Plain, detect([]byte(">s\nA"), "x.fa"))
}

func TestStreamChunksOverlap(t *testing.T) {
	path := writeFile(t, "long.fa", []byte(">chr1\nAAAACCCCGG\n"))
	recs := collect(t, path, 4, 1)

	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ID)
		assert.Equal(t, "chr1", r.Parent)
	}
	assert.Equal(t, []string{"chr1:0-4", "chr1:3-7", "chr1:6-10"}, ids)
	assert.Equal(t, 6, recs[2].Offset)
	assert.Equal(t, "CCGG", string(recs[2].Seq))
	assert.False(t, recs[1].Last)
	assert.True(t, recs[2].Last)
}

func TestStreamStdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	data := compress(t, Gzip, plain)
	go func() {
		_, _ = w.Write(data)
		_ = w.Close()
	}()

	recs := collect(t, "-", 0, 0)
	assert.Len(t, recs, 2)
}

func TestStreamChunksCtxPathCancelledYieldsNoRecords(t *testing.T) {
	path := writeFile(t, "x.fa", []byte(plain))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch, errc, err := StreamChunksCtxPath(ctx, path, 0, 0)
	require.NoError(t, err)
	n := 0
	for range ch {
		n++
	}
	assert.Zero(t, n)
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestStreamRejectsSequenceBeforeHeader(t *testing.T) {
	err := StreamRecordsCtx(context.Background(), strings.NewReader("ACGT\n>s\nA\n"), func(Record) error { return nil })
	assert.ErrorContains(t, err, "before first header")
}

func TestReadAllPathMissingFile(t *testing.T) {
	_, err := ReadAllPath(context.Background(), filepath.Join(t.TempDir(), "nope.fa"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
