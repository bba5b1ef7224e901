package engine

import (
	"errors"
	"fmt"
	"strings"

	"blastseed-core/lookup"
	"blastseed-core/matrix"
	"blastseed-core/wordfinder"
)

// Strand selects which query strands are searched.
type Strand uint8

const (
	StrandBoth Strand = iota
	StrandPlus
	StrandMinus
)

func (s Strand) String() string {
	switch s {
	case StrandPlus:
		return "plus"
	case StrandMinus:
		return "minus"
	case StrandBoth:
		return "both"
	default:
		return fmt.Sprintf("strand(%d)", uint8(s))
	}
}

func ParseStrand(s string) (Strand, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return StrandBoth, nil
	case "plus", "+":
		return StrandPlus, nil
	case "minus", "-":
		return StrandMinus, nil
	}
	return 0, &ConfigError{Field: "strand", Reason: fmt.Sprintf("unknown strand %q", s)}
}

// ErrInvalidConfig is matched by every *ConfigError.
var ErrInvalidConfig = errors.New("engine: invalid configuration")

// ConfigError names the offending option.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine: %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("engine: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}

// Config holds all search parameters. The embedded word finder settings
// apply to every query context.
type Config struct {
	wordfinder.Config

	Reward  int
	Penalty int
	Strand  Strand

	// Template is the discontiguous mask; empty selects TemplateCoding.
	Template string

	// NeedSegments fills HSP.QuerySeg/SubjectSeg for pretty output.
	NeedSegments bool
}

// DefaultConfig returns blastn-like settings.
func DefaultConfig() Config {
	return Config{
		Config:  wordfinder.DefaultConfig(),
		Reward:  2,
		Penalty: -3,
		Strand:  StrandBoth,
	}
}

// Validate checks option ranges that New would otherwise trip over.
func (c Config) Validate() error {
	if c.Reward <= 0 || c.Penalty >= 0 {
		return &ConfigError{Field: "reward/penalty", Reason: fmt.Sprintf("%d/%d", c.Reward, c.Penalty), Err: matrix.ErrBadScores}
	}
	if c.XDrop > matrix.MaxXDrop {
		return &ConfigError{Field: "xdrop", Reason: fmt.Sprintf("%d exceeds %d", c.XDrop, matrix.MaxXDrop)}
	}
	if c.Variant != wordfinder.Discontiguous && c.WordSize > lookup.MaxWordSize {
		return &ConfigError{Field: "word-size", Reason: fmt.Sprintf("%d exceeds %d", c.WordSize, lookup.MaxWordSize), Err: lookup.ErrBadWordSize}
	}
	if c.Strand > StrandMinus {
		return &ConfigError{Field: "strand", Reason: c.Strand.String()}
	}
	if err := c.Config.Validate(); err != nil {
		return &ConfigError{Field: "wordfinder", Reason: "rejected", Err: err}
	}
	return nil
}

func (c Config) template() string {
	if c.Template == "" {
		return lookup.TemplateCoding
	}
	return c.Template
}
