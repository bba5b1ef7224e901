// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"blastseed-core/engine"
	"blastseed/internal/appcore"
	"blastseed/internal/cli"
	"blastseed/internal/cmdutil"
	"blastseed/internal/output"
	"blastseed/internal/pipeline"
	"blastseed/internal/pretty"
	"blastseed/internal/stats"
	"blastseed/internal/version"
	"blastseed/internal/visitors"
	"blastseed/internal/writers"
)

const name = "blastseed"

// flush ends a help or version path: broken pipes are success, other write
// errors are runtime failures.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		fs.Usage()
		return flush(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flush(outw, stderr, 0)
	}

	log, err := cmdutil.NewLogger(stderr, opts.LogLevel, opts.LogJSON, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	cfg, err := opts.EngineConfig()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	part, _ := pipeline.ParsePartition(opts.Partition)

	sum := stats.New()
	log = log.With().Str("run", sum.RunID()).Logger()

	summaryFormat := output.FormatText
	if opts.Output != output.FormatText {
		summaryFormat = output.FormatJSON
	}
	coreOpts := appcore.Options{
		QueryFile:       opts.QueryFile,
		EachQuery:       opts.EachQuery,
		Subjects:        opts.Subjects,
		Engine:          cfg,
		Threads:         opts.Threads,
		ChunkSize:       opts.ChunkSize,
		Partition:       part,
		Summary:         sum,
		PrintSummary:    opts.Summary,
		SummaryFormat:   summaryFormat,
		NoMatchExitCode: opts.NoMatchExitCode,
		Log:             log,
	}
	writer := appcore.NewHSPWriterFactory(opts.Output, writers.Options{
		Sort:          opts.Sort,
		Header:        opts.Header,
		Pretty:        opts.Pretty,
		RunID:         sum.RunID(),
		PrettyOptions: pretty.DefaultOptions,
	})
	visit := visitors.Observe[engine.HSP]{Summary: sum, Next: visitors.PassThrough{}.Visit}
	return appcore.Run[engine.HSP](parent, stdout, stderr, coreOpts, visit.Visit, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
