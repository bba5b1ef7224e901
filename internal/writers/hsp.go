package writers

import (
	"io"

	"blastseed-core/engine"
	"blastseed/internal/common"
	"blastseed/internal/output"
	"blastseed/internal/pretty"
)

func init() {
	Register(output.FormatText, startText)
	Register(output.FormatJSON, startJSON)
}

func renderer(o Options) output.Renderer {
	if !o.Pretty {
		return nil
	}
	return func(h engine.HSP) string { return pretty.RenderHSPWithOptions(h, o.PrettyOptions) }
}

func drain(in <-chan engine.HSP, sort bool) []engine.HSP {
	var buf []engine.HSP
	for h := range in {
		buf = append(buf, h)
	}
	if sort {
		common.SortHSPs(buf)
	}
	return buf
}

// startText streams TSV rows unless sorting forces buffering.
func startText(out io.Writer, o Options, bufSize int) (chan<- engine.HSP, <-chan error) {
	in := make(chan engine.HSP, max(bufSize, 1))
	errCh := make(chan error, 1)
	go func() {
		if o.Sort {
			errCh <- output.WriteText(out, drain(in, true), o.Header, renderer(o))
			return
		}
		errCh <- output.StreamText(out, in, o.Header, renderer(o))
	}()
	return in, errCh
}

// startJSON always buffers: the output is a single array.
func startJSON(out io.Writer, o Options, bufSize int) (chan<- engine.HSP, <-chan error) {
	in := make(chan engine.HSP, max(bufSize, 1))
	errCh := make(chan error, 1)
	go func() {
		list := drain(in, o.Sort)
		if list == nil {
			list = []engine.HSP{}
		}
		errCh <- output.WriteJSON(out, list, o.RunID)
	}()
	return in, errCh
}
