package seqbuf

/* ------------------------- nucleotide alphabet -------------------------- */

// Residue codes. The four bases come first so that code < 4 means
// "unambiguous"; the IUPAC ambiguity codes follow. Sentinel sits outside the
// alphabet and only ever appears at buffer ends.
const (
	CodeA byte = iota
	CodeC
	CodeG
	CodeT
	CodeR
	CodeY
	CodeS
	CodeW
	CodeK
	CodeM
	CodeB
	CodeD
	CodeH
	CodeV
	CodeN

	Sentinel byte = 0x0F

	// AlphabetSize covers every residue code plus the sentinel.
	AlphabetSize = 16
)

const invalid = 0xFF

const codeLetters = "ACGTRYSWKMBDHVN"

var (
	toCode   [256]byte
	baseMask [AlphabetSize]byte // bit0=A bit1=C bit2=G bit3=T
	compCode [AlphabetSize]byte
)

func init() {
	for i := range toCode {
		toCode[i] = invalid
	}
	for c := 0; c < len(codeLetters); c++ {
		up := codeLetters[c]
		toCode[up] = byte(c)
		toCode[up+('a'-'A')] = byte(c)
	}
	toCode['U'], toCode['u'] = CodeT, CodeT

	set := func(c byte, bits byte) { baseMask[c] = bits }
	set(CodeA, 1)
	set(CodeC, 2)
	set(CodeG, 4)
	set(CodeT, 8)
	set(CodeR, 1|4)
	set(CodeY, 2|8)
	set(CodeS, 2|4)
	set(CodeW, 1|8)
	set(CodeK, 4|8)
	set(CodeM, 1|2)
	set(CodeB, 2|4|8)
	set(CodeD, 1|4|8)
	set(CodeH, 1|2|8)
	set(CodeV, 1|2|4)
	set(CodeN, 1|2|4|8)

	pairs := [][2]byte{
		{CodeA, CodeT}, {CodeC, CodeG}, {CodeR, CodeY}, {CodeK, CodeM},
		{CodeB, CodeV}, {CodeD, CodeH},
	}
	for _, p := range pairs {
		compCode[p[0]], compCode[p[1]] = p[1], p[0]
	}
	compCode[CodeS], compCode[CodeW], compCode[CodeN] = CodeS, CodeW, CodeN
	compCode[Sentinel] = Sentinel
}

// CodeOf returns the residue code for an ASCII letter.
func CodeOf(b byte) (byte, bool) {
	c := toCode[b]
	return c, c != invalid
}

// Letter returns the upper-case IUPAC letter for a residue code.
// The sentinel renders as '#'.
func Letter(code byte) byte {
	if int(code) < len(codeLetters) {
		return codeLetters[code]
	}
	return '#'
}

// Mask returns the IUPAC base bitmask of a code (0 for the sentinel).
func Mask(code byte) byte {
	if code >= AlphabetSize {
		return 0
	}
	return baseMask[code]
}

// IsBase reports whether code is one of A, C, G, T.
func IsBase(code byte) bool { return code < 4 }

// Complement returns the complementary residue code.
func Complement(code byte) byte { return compCode[code&0x0F] }
