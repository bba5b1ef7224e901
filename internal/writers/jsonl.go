// internal/writers/jsonl.go
package writers

import (
	"io"

	"blastseed-core/engine"
	"blastseed/internal/jsonlutil"
	"blastseed/internal/output"
	"blastseed/pkg/api"
)

func init() { Register(output.FormatJSONL, startJSONL) }

// startJSONL streams each HSP as one JSON line (v1). --sort buffers first.
func startJSONL(out io.Writer, o Options, bufSize int) (chan<- engine.HSP, <-chan error) {
	conv := func(h engine.HSP) api.HSPV1 { return output.ToAPIHSP(h, o.RunID) }
	if !o.Sort {
		return jsonlutil.Start(out, bufSize, conv, IsBrokenPipe)
	}
	in := make(chan engine.HSP, max(bufSize, 1))
	errCh := make(chan error, 1)
	go func() {
		list := drain(in, true)
		enc, done := jsonlutil.Start(out, len(list), conv, IsBrokenPipe)
		for _, h := range list {
			enc <- h
		}
		close(enc)
		errCh <- <-done
	}()
	return in, errCh
}
