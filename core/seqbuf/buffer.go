// Package seqbuf holds encoded nucleotide sequences padded with a sentinel
// residue at both ends. Extension loops walk outward from an anchor and stop
// when the scoring matrix meets the sentinel, so they never bounds-check.
package seqbuf

import (
	"errors"
	"fmt"
)

// ErrBadResidue is returned by Encode for bytes outside the IUPAC alphabet.
var ErrBadResidue = errors.New("seqbuf: residue outside nucleotide alphabet")

// ResidueError locates the first offending byte.
type ResidueError struct {
	Pos  int
	Byte byte
}

func (e *ResidueError) Error() string {
	return fmt.Sprintf("seqbuf: invalid residue %q at position %d", e.Byte, e.Pos)
}

func (e *ResidueError) Unwrap() error { return ErrBadResidue }

// Buffer is an encoded sequence laid out as [Sentinel, r0 … rn-1, Sentinel].
type Buffer struct {
	data []byte
}

// Encode converts ASCII residues to codes. Any byte that is not an IUPAC
// nucleotide letter (either case, U accepted as T) is an error.
func Encode(ascii []byte) (Buffer, error) {
	data := make([]byte, len(ascii)+2)
	data[0] = Sentinel
	for i, b := range ascii {
		c := toCode[b]
		if c == invalid {
			return Buffer{}, &ResidueError{Pos: i, Byte: b}
		}
		data[i+1] = c
	}
	data[len(data)-1] = Sentinel
	return Buffer{data: data}, nil
}

// MustEncode is Encode for literals in tests and presets.
func MustEncode(ascii string) Buffer {
	b, err := Encode([]byte(ascii))
	if err != nil {
		panic(err)
	}
	return b
}

// Load re-encodes ascii into b, reusing its backing array when large enough.
// Bytes outside the alphabet become N; the number replaced is returned.
// Subject sequences go through Load so a stray '*' or '-' in a database
// record does not abort a scan.
func (b *Buffer) Load(ascii []byte) (replaced int) {
	need := len(ascii) + 2
	if cap(b.data) < need {
		b.data = make([]byte, need)
	}
	b.data = b.data[:need]
	b.data[0] = Sentinel
	for i, r := range ascii {
		c := toCode[r]
		if c == invalid {
			c = CodeN
			replaced++
		}
		b.data[i+1] = c
	}
	b.data[need-1] = Sentinel
	return replaced
}

// Len is the number of residues, sentinels excluded.
func (b Buffer) Len() int {
	if len(b.data) < 2 {
		return 0
	}
	return len(b.data) - 2
}

// At returns the code at residue offset i. Offsets -1 and Len() address the
// sentinels.
func (b Buffer) At(i int) byte { return b.data[i+1] }

// Residues returns the residue codes without sentinels. The slice aliases
// the buffer.
func (b Buffer) Residues() []byte {
	if len(b.data) < 2 {
		return nil
	}
	return b.data[1 : len(b.data)-1]
}

// Padded returns the full sentinel-padded array. Residue offset i lives at
// index i+1.
func (b Buffer) Padded() []byte { return b.data }

// ReverseComplement returns a new buffer holding the minus strand.
func (b Buffer) ReverseComplement() Buffer {
	n := b.Len()
	data := make([]byte, n+2)
	data[0], data[n+1] = Sentinel, Sentinel
	for i := 0; i < n; i++ {
		data[i+1] = compCode[b.data[n-i]]
	}
	return Buffer{data: data}
}

// Slice decodes residues [from, to) back to ASCII.
func (b Buffer) Slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > b.Len() {
		to = b.Len()
	}
	if to <= from {
		return ""
	}
	out := make([]byte, to-from)
	for i := range out {
		out[i] = Letter(b.data[from+i+1])
	}
	return string(out)
}

func (b Buffer) String() string { return b.Slice(0, b.Len()) }
