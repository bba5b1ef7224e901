// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"blastseed-core/engine"
	"blastseed-core/fasta"
	"blastseed-core/hsp"
	"blastseed/internal/runutil"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
)

// Partition selects how work is split across workers.
type Partition uint8

const (
	// BySubject feeds records (or chunks) of every volume to a shared
	// worker set.
	BySubject Partition = iota
	// ByVolume gives each volume to one worker which scans it sequentially.
	ByVolume
)

func (p Partition) String() string {
	if p == ByVolume {
		return "volume"
	}
	return "subject"
}

func ParsePartition(s string) (Partition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "subject", "subjects":
		return BySubject, nil
	case "volume", "volumes", "file":
		return ByVolume, nil
	}
	return 0, fmt.Errorf("invalid --partition %q (want subject | volume)", s)
}

// Config controls the scanning pipeline.
type Config struct {
	Threads   int // number of workers (>=1)
	ChunkSize int // FASTA chunking window; 0 disables chunking
	Overlap   int // overlap between chunks (>= query length)
	Partition Partition
	DedupeCap int // bound on remembered keys; 0 = runutil default
	Log       zerolog.Logger
}

// Scanner is the per-worker capability the pipeline needs.
// *engine.Scanner satisfies it.
type Scanner interface {
	Scan(subjectID string, subject []byte) ([]engine.HSP, error)
	Stats() engine.Stats
}

// ScannerFactory builds one private Scanner per worker.
type ScannerFactory func() (Scanner, error)

// EngineScanners adapts an engine to a ScannerFactory.
func EngineScanners(eng *engine.Engine) ScannerFactory {
	return func() (Scanner, error) { return eng.NewScanner() }
}

// Hit is an HSP in record-global subject coordinates. Record numbers the
// subject record within the run, in feed order, starting at 0.
type Hit struct {
	engine.HSP
	Record uint32
}

// Totals summarize a finished run.
type Totals struct {
	Records int // subject records seen, chunks counted once
	engine.Stats
}

// Key identifies an HSP in record-global coordinates so chunk overlaps
// report it once.
type Key struct {
	File, Subject string
	Strand        string
	QStart        int
	SStart        int
	Length        int
}

type job struct {
	rec    fasta.Record
	file   string
	record uint32
}

// run carries the state shared by the feeders, workers and collector.
type run struct {
	cfg     Config
	factory ScannerFactory
	results chan []Hit
	records atomic.Uint32

	mu    sync.Mutex
	stats engine.Stats
}

// ForEachHSP scans every subject volume and calls visit once per distinct
// HSP. visit runs on a single goroutine. It returns the first error
// encountered, including context cancellation; cancellation is observed
// between subjects.
func ForEachHSP(ctx context.Context, cfg Config, files []string, factory ScannerFactory, visit func(Hit) error) (Totals, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	r := &run{cfg: cfg, factory: factory, results: make(chan []Hit, cfg.Threads*2)}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Collector + deduper
	var (
		cerr error
		cwg  sync.WaitGroup
		seen = runutil.NewLRUSet[Key](cfg.DedupeCap)
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for hs := range r.results {
			if cerr != nil {
				continue
			}
			for _, h := range hs {
				k := Key{File: h.SourceFile, Subject: h.SubjectID, Strand: h.Strand, QStart: h.QStart, SStart: h.SStart, Length: h.Length}
				if cfg.ChunkSize > 0 && seen.Add(k) {
					continue
				}
				if err := visit(h); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	var err error
	switch cfg.Partition {
	case ByVolume:
		err = r.byVolume(ctx, files)
	default:
		err = r.bySubject(ctx, files)
	}
	close(r.results)
	cwg.Wait()

	t := Totals{Records: int(r.records.Load()), Stats: r.stats}
	switch {
	case cerr != nil:
		return t, cerr
	case err != nil:
		return t, err
	}
	return t, ctx.Err()
}

// bySubject runs a feeder over all volumes and Threads workers fed from a
// shared jobs channel. Each worker owns one Scanner.
func (r *run) bySubject(ctx context.Context, files []string) error {
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, r.cfg.Threads*2)

	for i := 0; i < r.cfg.Threads; i++ {
		g.Go(func() error {
			sc, err := r.factory()
			if err != nil {
				return err
			}
			defer r.addStats(sc)
			for j := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := r.scan(gctx, sc, j); err != nil {
					return err
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for _, fa := range files {
			err := r.feed(gctx, fa, func(j job) error {
				select {
				case jobs <- j:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}

// byVolume scans each volume start to finish on one worker.
func (r *run) byVolume(ctx context.Context, files []string) error {
	p := pool.New().WithMaxGoroutines(r.cfg.Threads).WithContext(ctx).WithCancelOnError().WithFirstError()
	for _, fa := range files {
		fa := fa
		p.Go(func(ctx context.Context) error {
			sc, err := r.factory()
			if err != nil {
				return err
			}
			defer r.addStats(sc)
			r.cfg.Log.Debug().Str("volume", fa).Msg("scanning volume")
			return r.feed(ctx, fa, func(j job) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return r.scan(ctx, sc, j)
			})
		})
	}
	return p.Wait()
}

// feed streams the records of one volume, numbering each record once.
func (r *run) feed(ctx context.Context, fa string, send func(job) error) error {
	var cur uint32
	err := fasta.StreamChunksPathCtx(ctx, fa, r.cfg.ChunkSize, r.cfg.Overlap, func(rec fasta.Record) error {
		if rec.Offset == 0 {
			cur = r.records.Add(1) - 1
		}
		return send(job{rec: rec, file: fa, record: cur})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", fa, err)
	}
	return err
}

// scan runs one job and hands its hits to the collector. A full fixed
// list keeps the hits found so far; the engine already logged it.
func (r *run) scan(ctx context.Context, sc Scanner, j job) error {
	hsps, err := sc.Scan(j.rec.ID, j.rec.Seq)
	if err != nil && !errors.Is(err, hsp.ErrListFull) {
		return err
	}
	if len(hsps) == 0 {
		return nil
	}
	hits := make([]Hit, 0, len(hsps))
	for _, h := range hsps {
		if r.cfg.ChunkSize > 0 && cutByChunk(h, j.rec, r.cfg.Overlap) {
			continue
		}
		h.SubjectID = j.rec.Parent
		h.SStart += j.rec.Offset
		h.SEnd += j.rec.Offset
		h.SeedS += j.rec.Offset
		h.Diagonal += j.rec.Offset
		h.SourceFile = j.file
		hits = append(hits, Hit{HSP: h, Record: j.record})
	}
	if len(hits) == 0 {
		return nil
	}
	select {
	case r.results <- hits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cutByChunk reports whether h is a copy the neighbouring chunk reports
// whole: it touches the end of a chunk that is not the record's last, or it
// starts a later chunk and ends inside the overlap. This holds while the
// overlap is at least the query length.
func cutByChunk(h engine.HSP, rec fasta.Record, overlap int) bool {
	if !rec.Last && h.SEnd == len(rec.Seq) {
		return true
	}
	return rec.Offset > 0 && h.SStart == 0 && h.SEnd < overlap
}

func (r *run) addStats(sc Scanner) {
	r.mu.Lock()
	r.stats.Add(sc.Stats())
	r.mu.Unlock()
}
