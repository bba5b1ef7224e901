// Package matrix provides substitution scores for encoded nucleotide residues.
package matrix

import (
	"errors"
	"fmt"
	"math"

	"blastseed-core/seqbuf"
)

// SentinelScore is returned for any pair involving seqbuf.Sentinel. It is
// low enough that a single step onto the sentinel exceeds every permitted
// X-drop, which is what terminates extension at buffer ends.
const SentinelScore = -(1 << 24)

// MaxXDrop bounds drop-off values so SentinelScore always wins.
const MaxXDrop = 1 << 20

var ErrBadScores = errors.New("matrix: reward must be > 0 and penalty < 0")

// Matrix scores a pair of residue codes.
type Matrix interface {
	Score(a, b byte) int
}

// Table is a dense 16×16 substitution table indexed by residue code.
type Table struct {
	cells   [seqbuf.AlphabetSize][seqbuf.AlphabetSize]int32
	reward  int
	penalty int
}

// Nucleotide builds a blastn-style table. Base pairs score reward or
// penalty; pairs involving ambiguity codes score the rounded average over
// the bases each code can stand for.
func Nucleotide(reward, penalty int) (*Table, error) {
	if reward <= 0 || penalty >= 0 {
		return nil, fmt.Errorf("%w (got %d/%d)", ErrBadScores, reward, penalty)
	}
	t := &Table{reward: reward, penalty: penalty}
	for a := byte(0); a < seqbuf.AlphabetSize; a++ {
		for b := byte(0); b < seqbuf.AlphabetSize; b++ {
			if a == seqbuf.Sentinel || b == seqbuf.Sentinel {
				t.cells[a][b] = SentinelScore
				continue
			}
			t.cells[a][b] = int32(average(seqbuf.Mask(a), seqbuf.Mask(b), reward, penalty))
		}
	}
	return t, nil
}

// MustNucleotide panics on invalid scores; for tests and defaults.
func MustNucleotide(reward, penalty int) *Table {
	t, err := Nucleotide(reward, penalty)
	if err != nil {
		panic(err)
	}
	return t
}

func average(ma, mb byte, reward, penalty int) int {
	sum, n := 0, 0
	for i := 0; i < 4; i++ {
		if ma&(1<<i) == 0 {
			continue
		}
		for j := 0; j < 4; j++ {
			if mb&(1<<j) == 0 {
				continue
			}
			if i == j {
				sum += reward
			} else {
				sum += penalty
			}
			n++
		}
	}
	if n == 0 {
		return penalty
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// Score implements Matrix.
func (t *Table) Score(a, b byte) int { return int(t.cells[a&0x0F][b&0x0F]) }

// Reward is the score of an identical base pair.
func (t *Table) Reward() int { return t.reward }

// Penalty is the score of a mismatching base pair.
func (t *Table) Penalty() int { return t.penalty }
