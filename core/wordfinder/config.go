// Package wordfinder turns ordered seed hits into an initial hit list by
// applying the diagonal history and ungapped extension.
package wordfinder

import (
	"errors"
	"fmt"
	"strings"
)

// Variant selects how hits are paired across diagonals.
type Variant uint8

const (
	// Contiguous pairs hits on exactly the same diagonal.
	Contiguous Variant = iota
	// Adaptive also pairs with a recent hit up to Drift diagonals away.
	Adaptive
	// Discontiguous pairs template hits; it keeps its history in the
	// sparse stack table.
	Discontiguous
)

func (v Variant) String() string {
	switch v {
	case Contiguous:
		return "contiguous"
	case Adaptive:
		return "ag"
	case Discontiguous:
		return "discontiguous"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// ParseVariant accepts the CLI names and a few aliases.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contiguous", "blastn":
		return Contiguous, nil
	case "ag", "adaptive":
		return Adaptive, nil
	case "discontiguous", "dc", "mb", "megablast":
		return Discontiguous, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadVariant, s)
}

var (
	ErrBadVariant    = errors.New("wordfinder: unknown variant")
	ErrUnorderedHits = errors.New("wordfinder: hits are not ordered by subject offset")
	ErrBadConfig     = errors.New("wordfinder: invalid configuration")
)

// Config holds the per-search word finding options.
type Config struct {
	Window       int // two-hit pairing window; 0 selects single-hit mode
	XDrop        int
	Cutoff       int
	MultipleHits bool
	Variant      Variant

	// Drift is the diagonal tolerance of the Adaptive variant. It is
	// clamped to max(0, Window-WordSize).
	Drift    int
	WordSize int

	// Sparse forces the stack table for Contiguous and Adaptive.
	Sparse     bool
	Buckets    int
	StackDepth int

	ListCapacity   int
	Growable       bool
	DeferExtension bool

	// Frame is stamped on every extension saved by the finder.
	Frame int8
}

// DefaultConfig mirrors blastn's two-hit defaults.
func DefaultConfig() Config {
	return Config{
		Window:       40,
		XDrop:        20,
		Cutoff:       14,
		MultipleHits: true,
		Variant:      Contiguous,
		Drift:        2,
		WordSize:     11,
		Buckets:      1024,
		StackDepth:   64,
		ListCapacity: 4096,
		Growable:     true,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.Window < 0:
		return fmt.Errorf("%w: window %d", ErrBadConfig, c.Window)
	case c.XDrop < 0:
		return fmt.Errorf("%w: x-drop %d", ErrBadConfig, c.XDrop)
	case c.Drift < 0:
		return fmt.Errorf("%w: drift %d", ErrBadConfig, c.Drift)
	case c.WordSize < 1:
		return fmt.Errorf("%w: word size %d", ErrBadConfig, c.WordSize)
	case c.ListCapacity < 1:
		return fmt.Errorf("%w: list capacity %d", ErrBadConfig, c.ListCapacity)
	case c.Variant > Discontiguous:
		return fmt.Errorf("%w: %s", ErrBadVariant, c.Variant)
	}
	if c.usesSparse() && (c.Buckets < 1 || c.StackDepth < 1) {
		return fmt.Errorf("%w: sparse table needs buckets and depth >= 1", ErrBadConfig)
	}
	return nil
}

// Normalized resolves option interactions: a zero window leaves nothing
// to pair with, so it means single-hit.
func (c Config) Normalized() Config {
	if c.Window == 0 {
		c.MultipleHits = false
	}
	return c
}

func (c Config) usesSparse() bool {
	return c.Sparse || c.Variant == Discontiguous
}

// EffectiveDrift is the drift the Adaptive variant actually searches.
func (c Config) EffectiveDrift() int {
	if c.Variant != Adaptive {
		return 0
	}
	return min(c.Drift, max(0, c.Window-c.WordSize))
}
