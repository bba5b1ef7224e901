package lookup

import (
	"fmt"

	"blastseed-core/seqbuf"
)

// MaxWordSize bounds contiguous words.
const MaxWordSize = 64

// acNode is one automaton state. Edges are indexed by base code; after
// construction every edge is defined (goto completed through fail links).
type acNode struct {
	next [4]int32
	fail int32
	out  []int32 // query offsets whose word ends here
}

// Contiguous matches every unambiguous query word of a fixed size with an
// Aho–Corasick automaton, so one pass over the subject reports all hits.
type Contiguous struct {
	nodes    []acNode
	wordSize int
	words    int
}

// NewContiguous indexes all query words of length wordSize that contain
// only A, C, G or T.
func NewContiguous(query seqbuf.Buffer, wordSize int) (*Contiguous, error) {
	if wordSize < 1 || wordSize > MaxWordSize {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrBadWordSize, wordSize, MaxWordSize)
	}
	c := &Contiguous{wordSize: wordSize}
	c.nodes = append(c.nodes, newNode())

	res := query.Residues()
	run := 0 // unambiguous residues ending at i
	for i, code := range res {
		if !seqbuf.IsBase(code) {
			run = 0
			continue
		}
		run++
		if run < wordSize {
			continue
		}
		start := i - wordSize + 1
		c.insert(res[start:i+1], int32(start))
	}
	c.link()
	return c, nil
}

func newNode() acNode {
	return acNode{next: [4]int32{-1, -1, -1, -1}}
}

func (c *Contiguous) insert(word []byte, qOff int32) {
	state := int32(0)
	for _, b := range word {
		if c.nodes[state].next[b] == -1 {
			c.nodes[state].next[b] = int32(len(c.nodes))
			c.nodes = append(c.nodes, newNode())
		}
		state = c.nodes[state].next[b]
	}
	c.nodes[state].out = append(c.nodes[state].out, qOff)
	c.words++
}

// link sets failure links breadth-first and completes the goto function.
// All words share one length, so no output is reachable through a failure
// link and outputs need no propagation.
func (c *Contiguous) link() {
	queue := make([]int32, 0, len(c.nodes))
	root := &c.nodes[0]
	for ch := 0; ch < 4; ch++ {
		if nx := root.next[ch]; nx != -1 {
			c.nodes[nx].fail = 0
			queue = append(queue, nx)
		} else {
			root.next[ch] = 0
		}
	}
	for qh := 0; qh < len(queue); qh++ {
		r := queue[qh]
		for ch := 0; ch < 4; ch++ {
			s := c.nodes[r].next[ch]
			if s != -1 {
				queue = append(queue, s)
				c.nodes[s].fail = c.nodes[c.nodes[r].fail].next[ch]
			} else {
				c.nodes[r].next[ch] = c.nodes[c.nodes[r].fail].next[ch]
			}
		}
	}
}

// Scan appends every (query, subject) word match. Ambiguous subject residues
// restart the automaton.
func (c *Contiguous) Scan(subject seqbuf.Buffer, hits *Hits) {
	state := int32(0)
	for i, code := range subject.Residues() {
		if !seqbuf.IsBase(code) {
			state = 0
			continue
		}
		state = c.nodes[state].next[code]
		out := c.nodes[state].out
		if len(out) == 0 {
			continue
		}
		sOff := i - c.wordSize + 1
		for _, q := range out {
			hits.Add(int(q), sOff)
		}
	}
}

func (c *Contiguous) Span() int { return c.wordSize }

// Words is the number of indexed query words.
func (c *Contiguous) Words() int { return c.words }

// States is the automaton size.
func (c *Contiguous) States() int { return len(c.nodes) }
