package fasta

import (
	"context"
	"fmt"
)

// StreamChunksPathCtx opens `path`, scans FASTA, and emits overlapped chunks.
// Cancellation via ctx is honored between lines and between chunks.
//
// chunkSize <= 0  → whole record as one chunk (no overlap considered)
// overlap < 0     → treated as 0
//
// Chunk IDs carry the window as "<id>:<start>-<end>"; Offset and Parent give
// the same information structurally.
func StreamChunksPathCtx(
	ctx context.Context,
	path string,
	chunkSize, overlap int,
	emit func(Record) error,
) error {
	if overlap < 0 {
		overlap = 0
	}
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	return scanRecords(ctx, rc, func(id string, seq []byte) error {
		step := chunkSize - overlap
		if chunkSize <= 0 || chunkSize >= len(seq) || step <= 0 {
			return emit(Record{ID: id, Parent: id, Last: true, Seq: append([]byte(nil), seq...)})
		}
		for off := 0; off < len(seq); off += step {
			if err := ctx.Err(); err != nil {
				return err
			}
			end := min(off+chunkSize, len(seq))
			rec := Record{
				ID:     fmt.Sprintf("%s:%d-%d", id, off, end),
				Parent: id,
				Offset: off,
				Last:   end == len(seq),
				Seq:    append([]byte(nil), seq[off:end]...),
			}
			if err := emit(rec); err != nil {
				return err
			}
			if end == len(seq) {
				break
			}
		}
		return nil
	})
}

// ReadAllPath loads every record of a (possibly compressed) FASTA file.
func ReadAllPath(ctx context.Context, path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var recs []Record
	err = StreamRecordsCtx(ctx, rc, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fasta: %s: %w", path, err)
	}
	return recs, nil
}
