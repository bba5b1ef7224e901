package appcore

import (
	"io"

	"blastseed-core/engine"
	"blastseed/internal/output"
	"blastseed/internal/writers"
)

// HSPWriterFactory starts the registered writer for Format.
type HSPWriterFactory struct {
	Format string
	writers.Options
}

func NewHSPWriterFactory(format string, o writers.Options) HSPWriterFactory {
	return HSPWriterFactory{Format: format, Options: o}
}

// NeedSegments reports whether HSPs must carry their aligned residues.
func (w HSPWriterFactory) NeedSegments() bool {
	return w.Format == output.FormatText && w.Pretty
}

func (w HSPWriterFactory) Start(out io.Writer, bufSize int) (chan<- engine.HSP, <-chan error) {
	return writers.StartHSPWriter(out, w.Format, w.Options, bufSize)
}
