package node

// POSIXClass is a US-ASCII character class usable through \p{Name} or a
// predefined escape such as \d.
type POSIXClass uint8

const (
	ClassASCII POSIXClass = iota
	ClassAlpha
	ClassDigit
	ClassAlnum
	ClassUpper
	ClassLower
	ClassPunct
	ClassGraph
	ClassPrint
	ClassBlank
	ClassCntrl
	ClassXDigit
	ClassSpace
	ClassWord
)

var posixNames = [...]string{
	ClassASCII:  "ASCII",
	ClassAlpha:  "ALPHA",
	ClassDigit:  "DIGIT",
	ClassAlnum:  "ALNUM",
	ClassUpper:  "UPPER",
	ClassLower:  "LOWER",
	ClassPunct:  "PUNCT",
	ClassGraph:  "GRAPH",
	ClassPrint:  "PRINT",
	ClassBlank:  "BLANK",
	ClassCntrl:  "CNTRL",
	ClassXDigit: "XDIGIT",
	ClassSpace:  "SPACE",
	ClassWord:   "WORD",
}

func (c POSIXClass) String() string {
	if int(c) < len(posixNames) {
		return posixNames[c]
	}
	return "UNKNOWN"
}

// Contains reports whether r belongs to the class.
func (c POSIXClass) Contains(r rune) bool {
	if r < 0 || r > 0x7F {
		return false
	}
	upper := r >= 'A' && r <= 'Z'
	lower := r >= 'a' && r <= 'z'
	digit := r >= '0' && r <= '9'
	punct := r >= 0x21 && r <= 0x7E && !upper && !lower && !digit
	switch c {
	case ClassASCII:
		return true
	case ClassAlpha:
		return upper || lower
	case ClassDigit:
		return digit
	case ClassAlnum:
		return upper || lower || digit
	case ClassUpper:
		return upper
	case ClassLower:
		return lower
	case ClassPunct:
		return punct
	case ClassGraph:
		return r >= 0x21 && r <= 0x7E
	case ClassPrint:
		return r >= 0x20 && r <= 0x7E
	case ClassBlank:
		return r == ' ' || r == '\t'
	case ClassCntrl:
		return r < 0x20 || r == 0x7F
	case ClassXDigit:
		return digit || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	case ClassSpace:
		return r == ' ' || (r >= '\t' && r <= '\r')
	case ClassWord:
		return upper || lower || digit || r == '_'
	}
	return false
}
