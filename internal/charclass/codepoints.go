// Package charclass renders character-class nodes: bitmap, range, POSIX
// and Unicode leaves, literal code points and the complement, union,
// intersection and difference combinators built from them.
package charclass

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// Printable reports whether r can be shown as a glyph. Control, format,
// private-use, surrogate, unassigned and separator code points cannot.
// Combining marks are shown raw only inside a class listing, where they
// are not attached to a neighbouring literal.
func Printable(r rune, inClass bool) bool {
	switch {
	case r < 0 || r > unicode.MaxRune:
		return false
	case unicode.In(r, unicode.Cc, unicode.Cf, unicode.Co, unicode.Cs):
		return false
	case unicode.In(r, unicode.Zl, unicode.Zp, unicode.Zs):
		return false
	case !unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S):
		// unassigned (Cn)
		return false
	case !inClass && unicode.Is(unicode.M, r):
		return false
	}
	return true
}

// Glyph returns r itself when printable and its \u{XXXX} escape otherwise.
func Glyph(r rune, inClass bool) string {
	if Printable(r, inClass) {
		return string(r)
	}
	return fmt.Sprintf(`\u{%04X}`, r)
}

// Glyphs renders a code point sequence with Glyph.
func Glyphs(runes []rune, inClass bool) string {
	var sb strings.Builder
	for _, r := range runes {
		sb.WriteString(Glyph(r, inClass))
	}
	return sb.String()
}

// CodePointList renders runes as [U+XXXX][U+XXXX]...
func CodePointList(runes []rune) string {
	var sb strings.Builder
	for _, r := range runes {
		fmt.Fprintf(&sb, "[U+%04X]", r)
	}
	return sb.String()
}

// ParseCodePointList is the inverse of CodePointList.
func ParseCodePointList(s string) ([]rune, error) {
	var out []rune
	for len(s) > 0 {
		end := strings.IndexByte(s, ']')
		if !strings.HasPrefix(s, "[U+") || end < 0 {
			return nil, fmt.Errorf("malformed code point list near %q", s)
		}
		v, err := strconv.ParseUint(s[len("[U+"):end], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed code point %q: %w", s[:end+1], err)
		}
		out = append(out, rune(v))
		s = s[end+1:]
	}
	return out, nil
}

// Name returns the Unicode character name of r, or its escape when the
// code point has no name.
func Name(r rune) string {
	if name := runenames.Name(r); name != "" {
		return name
	}
	return fmt.Sprintf(`\u{%04X}`, r)
}

// DecodeBitmap returns the set code points of a Latin-1 bitmap in
// ascending order.
func DecodeBitmap(bits [256]bool) []rune {
	var out []rune
	for i, set := range bits {
		if set {
			out = append(out, rune(i))
		}
	}
	return out
}

// EncodeBitmap sets the bit of every Latin-1 code point in runes.
func EncodeBitmap(runes []rune) [256]bool {
	var bits [256]bool
	for _, r := range runes {
		if r >= 0 && r < 256 {
			bits[r] = true
		}
	}
	return bits
}
