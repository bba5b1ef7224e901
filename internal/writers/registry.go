// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"slices"

	"blastseed-core/engine"
	"blastseed/internal/pretty"
)

// Options are the presentation switches shared by every HSP writer.
type Options struct {
	Sort   bool
	Header bool
	Pretty bool
	RunID  string

	PrettyOptions pretty.Options
}

// StartFunc spins up a writer goroutine for one format. The error channel
// yields exactly once, after the input channel is closed.
type StartFunc func(out io.Writer, o Options, bufSize int) (chan<- engine.HSP, <-chan error)

// Writer registry (format → start). Formats register in init() blocks.
var hspWriters = map[string]StartFunc{}

// Register is idempotent, last wins.
func Register(format string, fn StartFunc) { hspWriters[format] = fn }

// Formats lists the registered formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(hspWriters))
	for f := range hspWriters {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// StartHSPWriter dispatches to the registered writer. An unknown format
// still returns a draining channel so callers need no special case.
func StartHSPWriter(out io.Writer, format string, o Options, bufSize int) (chan<- engine.HSP, <-chan error) {
	if fn, ok := hspWriters[format]; ok {
		return fn(out, o, bufSize)
	}
	in := make(chan engine.HSP, max(bufSize, 1))
	errCh := make(chan error, 1)
	go func() {
		for range in {
		}
		errCh <- fmt.Errorf("unknown output format %q (no writer registered)", format)
	}()
	return in, errCh
}
