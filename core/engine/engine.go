// Package engine runs the seed-and-extend filter for one query against a
// stream of subjects.
//
// An Engine holds the read-only parts of a search (encoded query contexts,
// lookup tables, scoring matrix) and may be shared by any number of
// goroutines. Each goroutine scans through its own Scanner.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"blastseed-core/lookup"
	"blastseed-core/matrix"
	"blastseed-core/seqbuf"
	"blastseed-core/wordfinder"
)

// queryContext is one searched strand of the query.
type queryContext struct {
	strand Strand
	frame  int8
	seq    seqbuf.Buffer
	table  lookup.Table
}

type Engine struct {
	cfg      Config
	queryID  string
	queryLen int
	m        *matrix.Table
	contexts []queryContext
	log      zerolog.Logger
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger routes maintenance events (history rebases, list overflow)
// to l. The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New validates cfg, encodes the query and builds one lookup table per
// searched strand.
func New(cfg Config, queryID string, query []byte, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := matrix.Nucleotide(cfg.Reward, cfg.Penalty)
	if err != nil {
		return nil, &ConfigError{Field: "reward/penalty", Reason: "matrix", Err: err}
	}
	plus, err := seqbuf.Encode(query)
	if err != nil {
		return nil, fmt.Errorf("engine: query %s: %w", queryID, err)
	}

	e := &Engine{cfg: cfg, queryID: queryID, queryLen: plus.Len(), m: m, log: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}

	if cfg.Strand != StrandMinus {
		if err := e.addContext(StrandPlus, 1, plus); err != nil {
			return nil, err
		}
	}
	if cfg.Strand != StrandPlus {
		if err := e.addContext(StrandMinus, -1, plus.ReverseComplement()); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) addContext(strand Strand, frame int8, seq seqbuf.Buffer) error {
	var (
		table lookup.Table
		err   error
	)
	if e.cfg.Variant == wordfinder.Discontiguous {
		table, err = lookup.NewTemplate(seq, e.cfg.template())
	} else {
		table, err = lookup.NewContiguous(seq, e.cfg.WordSize)
	}
	if err != nil {
		return &ConfigError{Field: "lookup", Reason: strand.String() + " strand", Err: err}
	}
	e.contexts = append(e.contexts, queryContext{strand: strand, frame: frame, seq: seq, table: table})
	return nil
}

func (e *Engine) Config() Config        { return e.cfg }
func (e *Engine) QueryID() string       { return e.queryID }
func (e *Engine) QueryLen() int         { return e.queryLen }
func (e *Engine) Contexts() int         { return len(e.contexts) }
func (e *Engine) Matrix() *matrix.Table { return e.m }
