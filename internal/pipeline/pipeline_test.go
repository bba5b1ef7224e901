package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"blastseed-core/engine"
	"blastseed-core/hsp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time check: the concrete scanner satisfies the pipeline contract.
var _ Scanner = (*engine.Scanner)(nil)

const probe = "GATTACAGGACATTAGCCGT"

func writeFasta(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func probeEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.WordSize = 8
	cfg.MultipleHits = false
	cfg.Cutoff = 10
	cfg.Strand = engine.StrandPlus
	eng, err := engine.New(cfg, "probe", []byte(probe))
	require.NoError(t, err)
	return eng
}

func collectHits(t *testing.T, cfg Config, files []string, f ScannerFactory) ([]Hit, Totals) {
	t.Helper()
	var got []Hit
	tot, err := ForEachHSP(context.Background(), cfg, files, f, func(h Hit) error {
		got = append(got, h)
		return nil
	})
	require.NoError(t, err)
	sort.Slice(got, func(i, j int) bool {
		if got[i].SubjectID != got[j].SubjectID {
			return got[i].SubjectID < got[j].SubjectID
		}
		return got[i].SStart < got[j].SStart
	})
	return got, tot
}

func TestForEachHSPPartitionsAgree(t *testing.T) {
	c := strings.Repeat
	a := writeFasta(t, "a.fa", ">s1\n"+c("C", 100)+probe+c("C", 100)+"\n>s2\n"+c("C", 50)+"\n")
	b := writeFasta(t, "b.fa", ">t1\n"+c("A", 30)+probe+c("A", 10)+"\n")
	eng := probeEngine(t)

	serial, tot := collectHits(t, Config{Threads: 1}, []string{a, b}, EngineScanners(eng))
	byVol, totVol := collectHits(t, Config{Threads: 2, Partition: ByVolume}, []string{a, b}, EngineScanners(eng))

	require.Len(t, serial, 2)
	assert.Equal(t, "s1", serial[0].SubjectID)
	assert.Equal(t, 100, serial[0].SStart)
	assert.Equal(t, 120, serial[0].SEnd)
	assert.Equal(t, 40, serial[0].Score)
	assert.Equal(t, a, serial[0].SourceFile)
	assert.Equal(t, "t1", serial[1].SubjectID)
	assert.Equal(t, 30, serial[1].SStart)
	assert.Equal(t, b, serial[1].SourceFile)
	assert.Equal(t, 3, tot.Records)
	assert.Equal(t, 3, tot.Subjects)

	require.Len(t, byVol, 2)
	for i := range serial {
		assert.Equal(t, serial[i].HSP, byVol[i].HSP)
	}
	assert.Equal(t, 3, totVol.Records)
}

func TestForEachHSPChunkedMatchesWhole(t *testing.T) {
	c := strings.Repeat
	// the probe fills exactly the overlap of chunks [80,140) and [120,180)
	fa := writeFasta(t, "c.fa", ">s1\n"+c("C", 120)+probe+c("C", 80)+"\n")
	eng := probeEngine(t)

	whole, _ := collectHits(t, Config{Threads: 1}, []string{fa}, EngineScanners(eng))
	chunked, tot := collectHits(t, Config{Threads: 3, ChunkSize: 60, Overlap: len(probe)}, []string{fa}, EngineScanners(eng))

	require.Len(t, whole, 1)
	require.Len(t, chunked, 1)
	assert.Equal(t, whole[0].HSP, chunked[0].HSP)
	assert.Equal(t, 120, chunked[0].SStart)
	assert.Equal(t, 1, tot.Records)
	assert.Equal(t, 5, tot.Subjects)
}

type fakeScanner struct {
	hits  map[string][]engine.HSP
	err   error
	stats engine.Stats
}

func (f *fakeScanner) Scan(id string, _ []byte) ([]engine.HSP, error) {
	f.stats.Subjects++
	return f.hits[id], f.err
}

func (f *fakeScanner) Stats() engine.Stats { return f.stats }

func fakeFactory(hits map[string][]engine.HSP, err error) ScannerFactory {
	return func() (Scanner, error) { return &fakeScanner{hits: hits, err: err}, nil }
}

func seg(s, e int) engine.HSP {
	return engine.HSP{Strand: "plus", QStart: 0, QEnd: e - s, SStart: s, SEnd: e, Length: e - s, Diagonal: s}
}

func TestForEachHSPDedupesOverlap(t *testing.T) {
	fa := writeFasta(t, "r.fa", ">r\n"+strings.Repeat("ACGT", 25)+"\n")
	hits := map[string][]engine.HSP{
		// [45,55) lies inside the overlap and is seen by both chunks
		"r:0-60":   {seg(45, 55), seg(50, 60)},
		"r:40-100": {seg(5, 15), seg(10, 30)},
	}
	got, tot := collectHits(t, Config{Threads: 2, ChunkSize: 60, Overlap: 20}, []string{fa}, fakeFactory(hits, nil))

	require.Len(t, got, 2)
	assert.Equal(t, "r", got[0].SubjectID)
	assert.Equal(t, 45, got[0].SStart)
	assert.Equal(t, 55, got[0].SEnd)
	assert.Equal(t, 50, got[1].SStart)
	assert.Equal(t, 70, got[1].SEnd)
	assert.Equal(t, 50, got[1].Diagonal)
	assert.Equal(t, 2, tot.Subjects)
}

func TestForEachHSPKeepsHitsOnFullList(t *testing.T) {
	fa := writeFasta(t, "f.fa", ">f\nACGT\n")
	full := fmt.Errorf("engine: subject f: %w", hsp.ErrListFull)
	got, _ := collectHits(t, Config{Threads: 1}, []string{fa}, fakeFactory(map[string][]engine.HSP{"f": {seg(0, 4)}}, full))
	assert.Len(t, got, 1)
}

func TestForEachHSPPropagatesErrors(t *testing.T) {
	fa := writeFasta(t, "e.fa", ">e1\nACGT\n>e2\nACGT\n")
	hits := map[string][]engine.HSP{"e1": {seg(0, 4)}, "e2": {seg(0, 4)}}

	boom := errors.New("boom")
	_, err := ForEachHSP(context.Background(), Config{Threads: 1}, []string{fa}, fakeFactory(hits, nil), func(Hit) error { return boom })
	assert.ErrorIs(t, err, boom)

	_, err = ForEachHSP(context.Background(), Config{Threads: 1}, []string{fa}, fakeFactory(hits, boom), func(Hit) error { return nil })
	assert.ErrorIs(t, err, boom)

	_, err = ForEachHSP(context.Background(), Config{Threads: 2, Partition: ByVolume}, []string{fa},
		func() (Scanner, error) { return nil, boom }, func(Hit) error { return nil })
	assert.ErrorIs(t, err, boom)

	_, err = ForEachHSP(context.Background(), Config{Threads: 1}, []string{filepath.Join(t.TempDir(), "missing.fa")},
		fakeFactory(hits, nil), func(Hit) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestForEachHSPCancelled(t *testing.T) {
	fa := writeFasta(t, "x.fa", ">x\nACGT\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var mu sync.Mutex
	visited := 0
	_, err := ForEachHSP(ctx, Config{Threads: 2}, []string{fa}, fakeFactory(map[string][]engine.HSP{"x": {seg(0, 4)}}, nil), func(Hit) error {
		mu.Lock()
		visited++
		mu.Unlock()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, visited)
}

func TestParsePartition(t *testing.T) {
	p, err := ParsePartition("volume")
	require.NoError(t, err)
	assert.Equal(t, ByVolume, p)
	assert.Equal(t, "volume", p.String())

	p, err = ParsePartition("")
	require.NoError(t, err)
	assert.Equal(t, BySubject, p)

	_, err = ParsePartition("shard")
	assert.Error(t, err)
}
