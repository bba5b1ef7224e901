// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"blastseed-core/engine"
	"blastseed-core/fasta"
	"blastseed/internal/cmdutil"
	"blastseed/internal/output"
	"blastseed/internal/pipeline"
	"blastseed/internal/runutil"
	"blastseed/internal/stats"
	"blastseed/internal/writers"

	"github.com/rs/zerolog"
)

type Options struct {
	QueryFile string
	EachQuery bool
	Subjects  []string

	Engine engine.Config

	Threads   int
	ChunkSize int
	Partition pipeline.Partition

	// Summary receives the observations of the visitor; Run resets it per
	// query. PrintSummary writes one report per query to stderr.
	Summary       *stats.Summary
	PrintSummary  bool
	SummaryFormat string

	NoMatchExitCode int
	Log             zerolog.Logger
}

type VisitorFunc[T any] func(pipeline.Hit) (keep bool, out T, err error)

type WriterFactory[T any] interface {
	NeedSegments() bool
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// query is one search: a query record and the engine built for it.
type query struct {
	rec fasta.Record
	eng *engine.Engine
}

func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	log := o.Log
	outw := bufio.NewWriter(stdout)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	queries, err := loadQueries(ctx, o, wf.NeedSegments())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	thr := runutil.EffectiveThreads(o.Threads, runtime.NumCPU())
	inCh, writeErr := wf.Start(outw, thr*4)
	send := func(x T) error {
		select {
		case inCh <- x:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var (
		total   int
		perr    error
		reports []stats.Report
	)
	for _, q := range queries {
		chunkSize, overlap, warns := runutil.ValidateChunking(o.ChunkSize, q.eng.QueryLen())
		for _, w := range warns {
			log.Warn().Str("query", q.rec.ID).Msg(w)
		}
		if o.Summary != nil {
			o.Summary.Reset()
		}

		start := time.Now()
		n, tot, err := cmdutil.RunStream(
			ctx,
			pipeline.Config{
				Threads:   thr,
				ChunkSize: chunkSize,
				Overlap:   overlap,
				Partition: o.Partition,
				Log:       log,
			},
			o.Subjects,
			pipeline.EngineScanners(q.eng),
			visit,
			send,
		)
		total += n
		log.Debug().
			Str("query", q.rec.ID).
			Int("hsps", n).
			Int("records", tot.Records).
			Int64("residues", tot.Residues).
			Dur("elapsed", time.Since(start)).
			Msg("query done")
		if err != nil {
			perr = err
			break
		}
		if o.Summary != nil {
			reports = append(reports, o.Summary.Report(q.rec.ID, tot.Records, tot.Stats))
		}
	}

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	if o.PrintSummary {
		for _, r := range reports {
			if err := output.WriteSummary(stderr, o.SummaryFormat, r); err != nil {
				fmt.Fprintln(stderr, err)
				return 3
			}
		}
	}
	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}

// loadQueries reads the query FASTA and builds an engine per searched record.
// Without EachQuery only the first record is searched.
func loadQueries(ctx context.Context, o Options, needSegments bool) ([]query, error) {
	recs, err := fasta.ReadAllPath(ctx, o.QueryFile)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", o.QueryFile, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("query %s: no FASTA records", o.QueryFile)
	}
	if !o.EachQuery && len(recs) > 1 {
		o.Log.Warn().Int("records", len(recs)).Str("query", recs[0].ID).
			Msg("query file holds several records; searching the first (see --each-query)")
		recs = recs[:1]
	}

	cfg := o.Engine
	cfg.NeedSegments = cfg.NeedSegments || needSegments
	out := make([]query, 0, len(recs))
	for _, r := range recs {
		eng, err := engine.New(cfg, r.ID, r.Seq, engine.WithLogger(o.Log))
		if err != nil {
			return nil, err
		}
		out = append(out, query{rec: r, eng: eng})
	}
	return out, nil
}
