package lookup

import (
	"fmt"

	"blastseed-core/seqbuf"
)

// Discontiguous template presets (1 = compared position, 0 = ignored).
const (
	TemplateCoding  = "1101101101101101"
	TemplateOptimal = "111010010100110111"
)

// Template matches query and subject windows that agree on the positions a
// discontiguous template selects. Ignored positions may differ, which lets
// seeds survive the third-codon wobble of coding sequence.
type Template struct {
	mask  string
	care  []int
	index map[uint64][]int32
}

// NewTemplate indexes every query window of len(mask) residues whose
// selected positions are unambiguous. The mask must start and end with a
// selected position and select at most 32.
func NewTemplate(query seqbuf.Buffer, mask string) (*Template, error) {
	care, err := parseMask(mask)
	if err != nil {
		return nil, err
	}
	t := &Template{mask: mask, care: care, index: make(map[uint64][]int32)}
	res := query.Residues()
	for p := 0; p+len(mask) <= len(res); p++ {
		if key, ok := t.key(res, p); ok {
			t.index[key] = append(t.index[key], int32(p))
		}
	}
	return t, nil
}

func parseMask(mask string) ([]int, error) {
	if len(mask) == 0 || mask[0] != '1' || mask[len(mask)-1] != '1' {
		return nil, fmt.Errorf("%w: %q must start and end with 1", ErrBadTemplate, mask)
	}
	var care []int
	for i := 0; i < len(mask); i++ {
		switch mask[i] {
		case '1':
			care = append(care, i)
		case '0':
		default:
			return nil, fmt.Errorf("%w: %q has %q at %d", ErrBadTemplate, mask, mask[i], i)
		}
	}
	if len(care) > 32 {
		return nil, fmt.Errorf("%w: %q selects %d positions (max 32)", ErrBadTemplate, mask, len(care))
	}
	return care, nil
}

// key packs two bits per selected residue of the window starting at p.
func (t *Template) key(res []byte, p int) (uint64, bool) {
	var k uint64
	for _, c := range t.care {
		code := res[p+c]
		if !seqbuf.IsBase(code) {
			return 0, false
		}
		k = k<<2 | uint64(code)
	}
	return k, true
}

// Scan appends hits in subject order; each hit anchors at the window start.
func (t *Template) Scan(subject seqbuf.Buffer, hits *Hits) {
	res := subject.Residues()
	for s := 0; s+len(t.mask) <= len(res); s++ {
		key, ok := t.key(res, s)
		if !ok {
			continue
		}
		for _, q := range t.index[key] {
			hits.Add(int(q), s)
		}
	}
}

func (t *Template) Span() int    { return len(t.mask) }
func (t *Template) Weight() int  { return len(t.care) }
func (t *Template) Mask() string { return t.mask }
func (t *Template) Keys() int    { return len(t.index) }
