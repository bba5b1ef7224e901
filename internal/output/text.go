// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"blastseed-core/engine"
)

// Renderer draws an optional block under a row (pretty mode).
type Renderer func(engine.HSP) string

func writeRow(w io.Writer, h engine.HSP, render Renderer) error {
	if _, err := fmt.Fprintln(w, FormatRowTSV(h)); err != nil {
		return err
	}
	if render == nil {
		return nil
	}
	if block := render(h); block != "" {
		if _, err := io.WriteString(w, block); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints one TSV line per HSP, each followed by its pretty block
// when render is non-nil.
func WriteText(w io.Writer, list []engine.HSP, header bool, render Renderer) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, h := range list {
		if err := writeRow(w, h, render); err != nil {
			return err
		}
	}
	return nil
}

// StreamText is WriteText over a channel. It drains in even after a write
// error so senders never block.
func StreamText(w io.Writer, in <-chan engine.HSP, header bool, render Renderer) error {
	var err error
	if header {
		_, err = fmt.Fprintln(w, TSVHeader)
	}
	for h := range in {
		if err != nil {
			continue
		}
		err = writeRow(w, h, render)
	}
	return err
}
