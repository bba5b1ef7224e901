package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// scanRecords parses FASTA from r and calls emit once per record with a
// sequence buffer that is reused for the next record. Lines are checked
// against ctx between reads.
func scanRecords(ctx context.Context, r io.Reader, emit func(id string, seq []byte) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id     string
		inRec  bool
		seq    = make([]byte, 0, 1<<20)
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		if lineNo&0xff == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := sc.Bytes()
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := ctx.Err(); err != nil {
				return err
			}
			if inRec {
				if err := emit(id, seq); err != nil {
					return err
				}
				seq = seq[:0]
			}
			id, inRec = parseHeaderID(line[1:]), true
			continue
		}
		if !inRec {
			return fmt.Errorf("fasta: line %d: sequence data before first header", lineNo)
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if inRec {
		return emit(id, seq)
	}
	return nil
}

// StreamRecordsCtx emits every record of r as an owned Record.
func StreamRecordsCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	return scanRecords(ctx, r, func(id string, seq []byte) error {
		return emit(Record{ID: id, Parent: id, Last: true, Seq: append([]byte(nil), seq...)})
	})
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
