package fasta

import (
	"context"
)

// Record represents a parsed FASTA sequence (or a chunk of one).
// For a chunk, Parent is the record ID, Offset the chunk start within it
// and Last marks the record's final chunk.
type Record struct {
	ID     string
	Parent string
	Offset int
	Last   bool
	Seq    []byte
}

// StreamChunksCtxPath is the ctx-aware channel wrapper around StreamChunksPathCtx.
// Open errors for non-stdin paths are reported immediately; a scan error is
// delivered on the returned error channel after the record channel closes.
func StreamChunksCtxPath(ctx context.Context, path string, chunkSize, overlap int) (<-chan Record, <-chan error, error) {
	if path != "-" {
		rc, err := openReader(path)
		if err != nil {
			return nil, nil, err
		}
		_ = rc.Close()
	}

	out := make(chan Record, 8)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(out)
		errc <- StreamChunksPathCtx(ctx, path, chunkSize, overlap, func(r Record) error {
			select {
			case out <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, errc, nil
}
