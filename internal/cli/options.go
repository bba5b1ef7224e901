// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"blastseed-core/engine"
	"blastseed-core/lookup"
	"blastseed-core/wordfinder"
	"blastseed/internal/cliutil"
	"blastseed/internal/config"
	"blastseed/internal/output"
	"blastseed/internal/pipeline"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	QueryFile string
	EachQuery bool // every query record is a separate search
	Subjects  []string

	// Word finding
	WordSize       int
	Window         int
	XDrop          int
	Cutoff         int
	SingleHit      bool
	Finder         string // contiguous | ag | discontiguous
	Drift          int
	Template       string // coding | optimal | literal 0/1 mask
	Sparse         bool
	Buckets        int
	StackDepth     int
	ListSize       int
	FixedList      bool
	DeferExtension bool

	// Scoring
	Reward  int
	Penalty int
	Strand  string

	// Performance
	Threads   int
	Partition string
	ChunkSize int

	// Output
	Output          string
	Pretty          bool
	Sort            bool
	Header          bool // true unless --no-header
	Summary         bool
	NoMatchExitCode int

	// Misc
	Quiet      bool
	LogJSON    bool
	LogLevel   string
	ConfigFile string
	Version    bool
}

// Aliases maps every short flag to the long flag sharing its target.
var Aliases = map[string]string{
	"Q": "query",
	"s": "subjects",
	"w": "word-size",
	"x": "xdrop",
	"t": "threads",
	"o": "output",
	"q": "quiet",
	"v": "version",
	"h": "help",
}

// sliceValue appends each value to a *[]string (for --subjects/-s).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// Repeatable lets config lists feed one Set per element.
func (s *sliceValue) Repeatable() bool { return true }

// NewFlagSet returns a FlagSet with ContinueOnError and the grouped help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	Usage(fs, name)
	return fs
}

// register wires every flag onto fs and returns the "no-header" and help
// bools that ParseArgs finalizes.
func register(fs *flag.FlagSet, o *Options) (noHeader, help *bool) {
	d := engine.DefaultConfig()
	noHeader, help = new(bool), new(bool)

	// Input
	fs.StringVar(&o.QueryFile, "query", "", "query FASTA (first record unless --each-query)")
	fs.StringVar(&o.QueryFile, "Q", "", "alias of --query")
	fs.BoolVar(&o.EachQuery, "each-query", false, "search every query record separately")
	subj := &sliceValue{dst: &o.Subjects}
	fs.Var(subj, "subjects", "subject FASTA volume(s) (repeatable) or '-'")
	fs.Var(subj, "s", "alias of --subjects")

	// Word finding
	fs.IntVar(&o.WordSize, "word-size", d.WordSize, "seed word size")
	fs.IntVar(&o.WordSize, "w", d.WordSize, "alias of --word-size")
	fs.IntVar(&o.Window, "window", d.Window, "two-hit window")
	fs.IntVar(&o.XDrop, "xdrop", d.XDrop, "ungapped X-drop")
	fs.IntVar(&o.XDrop, "x", d.XDrop, "alias of --xdrop")
	fs.IntVar(&o.Cutoff, "cutoff", d.Cutoff, "minimum ungapped score to save")
	fs.BoolVar(&o.SingleHit, "single-hit", false, "extend every seed (no two-hit pairing)")
	fs.StringVar(&o.Finder, "finder", d.Variant.String(), "word finder: contiguous | ag | discontiguous")
	fs.IntVar(&o.Drift, "drift", d.Drift, "ag: diagonal tolerance when pairing")
	fs.StringVar(&o.Template, "template", "coding", "discontiguous template: coding | optimal | 0/1 mask")
	fs.BoolVar(&o.Sparse, "sparse", false, "use the bucketed stack history for every finder")
	fs.IntVar(&o.Buckets, "buckets", d.Buckets, "stack history buckets")
	fs.IntVar(&o.StackDepth, "stack-depth", d.StackDepth, "stack history max entries per bucket")
	fs.IntVar(&o.ListSize, "list-size", d.ListCapacity, "initial hit list capacity")
	fs.BoolVar(&o.FixedList, "fixed-list", false, "never grow the hit list; drop seeds once full")
	fs.BoolVar(&o.DeferExtension, "defer-extension", false, "save qualifying seeds without extending")

	// Scoring
	fs.IntVar(&o.Reward, "reward", d.Reward, "match reward")
	fs.IntVar(&o.Penalty, "penalty", d.Penalty, "mismatch penalty (negative)")
	fs.StringVar(&o.Strand, "strand", d.Strand.String(), "query strand(s): plus | minus | both")

	// Performance
	fs.IntVar(&o.Threads, "threads", 0, "worker threads (0=all CPUs)")
	fs.IntVar(&o.Threads, "t", 0, "alias of --threads")
	fs.StringVar(&o.Partition, "partition", pipeline.BySubject.String(), "work split: subject | volume")
	fs.IntVar(&o.ChunkSize, "chunk-size", 0, "split subjects into N-bp windows (0=no chunking)")

	// Output
	fs.StringVar(&o.Output, "output", output.FormatText, "output: text | json | jsonl")
	fs.StringVar(&o.Output, "o", output.FormatText, "alias of --output")
	fs.BoolVar(&o.Pretty, "pretty", false, "pretty ASCII alignment block (text)")
	fs.BoolVar(&o.Sort, "sort", false, "sort outputs deterministically")
	fs.BoolVar(noHeader, "no-header", false, "suppress header line")
	fs.BoolVar(&o.Summary, "summary", false, "print a run summary after the hits")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no HSPs are found")

	// Misc
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress non-essential warnings")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&o.LogJSON, "log-json", false, "log as JSON lines on stderr")
	fs.StringVar(&o.LogLevel, "log-level", "info", "log level: debug | info | warn | error")
	fs.StringVar(&o.ConfigFile, "config", "", "config file (yaml | toml | json)")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	fs.BoolVar(&o.Version, "v", false, "alias of --version")
	fs.BoolVar(help, "help", false, "show this help")
	fs.BoolVar(help, "h", false, "alias of --help")
	return noHeader, help
}

// ParseArgs registers and parses all flags, layers the config file and
// BLASTSEED_* environment under them, and validates the result.
// Positionals are subject volumes (globs are expanded).
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	noHeader, help := register(fs, &opt)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if *help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if err := config.ApplyFile(fs, opt.ConfigFile, Aliases); err != nil {
		return opt, err
	}
	opt.Header = !*noHeader

	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return opt, err
		}
		opt.Subjects = append(opt.Subjects, exp...)
	}
	opt.Subjects = cliutil.Dedupe(opt.Subjects)
	return opt, Validate(&opt)
}

// Validate applies the CLI invariants that do not need the engine.
func Validate(o *Options) error {
	if o.QueryFile == "" {
		return errors.New("--query is required")
	}
	if len(o.Subjects) == 0 {
		return errors.New("at least one subject volume is required")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.ChunkSize < 0 {
		return errors.New("--chunk-size must be ≥ 0")
	}
	switch o.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Pretty && o.Output != output.FormatText {
		return errors.New("--pretty only applies to --output text")
	}
	if _, err := pipeline.ParsePartition(o.Partition); err != nil {
		return err
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	_, err := o.EngineConfig()
	return err
}

// TemplateMask resolves a --template name to its mask.
func TemplateMask(name string) string {
	switch strings.ToLower(name) {
	case "", "coding":
		return lookup.TemplateCoding
	case "optimal":
		return lookup.TemplateOptimal
	}
	return name
}

// EngineConfig maps the options onto a validated engine configuration.
func (o Options) EngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	v, err := wordfinder.ParseVariant(o.Finder)
	if err != nil {
		return cfg, fmt.Errorf("invalid --finder: %w", err)
	}
	st, err := engine.ParseStrand(o.Strand)
	if err != nil {
		return cfg, err
	}

	cfg.Variant = v
	cfg.WordSize = o.WordSize
	cfg.Window = o.Window
	cfg.XDrop = o.XDrop
	cfg.Cutoff = o.Cutoff
	cfg.MultipleHits = !o.SingleHit && o.Window > 0
	cfg.Drift = o.Drift
	cfg.Sparse = o.Sparse
	cfg.Buckets = o.Buckets
	cfg.StackDepth = o.StackDepth
	cfg.ListCapacity = o.ListSize
	cfg.Growable = !o.FixedList
	cfg.DeferExtension = o.DeferExtension
	cfg.Reward = o.Reward
	cfg.Penalty = o.Penalty
	cfg.Strand = st
	cfg.Template = TemplateMask(o.Template)
	cfg.NeedSegments = o.Pretty
	return cfg, cfg.Validate()
}
