package catalog

type entry struct {
	terse   string
	verbose string
}

var templates = map[Key]entry{
	"Start": {
		terse:   "%s. Start unanchored match (minLength=%d)",
		verbose: "%s. Start unanchored match (minLength=%d)",
	},
	"StartS": {
		terse:   "%s. Start unanchored match (minLength=%d)",
		verbose: "%s. Start unanchored match with support for supplementary characters (minLength=%d)",
	},

	"Caret": {
		terse:   "%s. (?m:^)",
		verbose: "%s. Match beginning of a line: (?m:^)",
	},
	"UnixCaret": {
		terse:   "%s. (?dm:^)",
		verbose: "%s. Match beginning of a line in UNIX_LINES mode: (?dm:^)",
	},
	"Dollar(multiline=true)": {
		terse:   "%s. (?m:$)",
		verbose: "%s. Match before a line terminator (end of a line) or the end of the string: (?m:$)",
	},
	"Dollar(multiline=false)": {
		terse:   `%s. \Z or default $`,
		verbose: `%s. Match the end of the string but just before final line terminator if any: \Z or default $`,
	},
	"UnixDollar(multiline=true)": {
		terse:   "%s. (?dm:$)",
		verbose: "%s. Match before a line terminator (end of a line) or the end of the string, in UNIX_LINES mode: (?dm:$)",
	},
	"UnixDollar(multiline=false)": {
		terse:   `%s. (?d:\Z) or (?d:$)`,
		verbose: `%s. Match the end of the string but just before final line terminator if any, in UNIX_LINES mode: (?d:\Z) or (?d:$)`,
	},
	"Begin": {
		terse:   `%s. \A or default ^`,
		verbose: `%s. Match the beginning of a string: \A or default ^`,
	},
	"End": {
		terse:   `%s. \z`,
		verbose: `%s. Match the end of a string: \z`,
	},
	"LastMatch": {
		terse:   `%s. \G`,
		verbose: `%s. Last match boundary: \G`,
	},
	"Bound(both)": {
		terse:   `%s. \b`,
		verbose: `%s. Match a word boundary: \b`,
	},
	"Bound(none)": {
		terse:   `%s. \B`,
		verbose: `%s. Match a non-word boundary: \B`,
	},

	"Single": {
		terse:   "%s. Match code point: U+%04X %s",
		verbose: "%s. Match a BMP (Basic Multilingual Plane) character (code point at and below 0xFFFF): U+%04X %s",
	},
	"SingleS": {
		terse:   "%s. Match code point: U+%04X %s",
		verbose: "%s. Match a supplementary character (code point at and above 0x10000): U+%04X %s",
	},
	"SingleI": {
		terse:   "%s. Caseless ASCII match: U+%04X / U+%04X",
		verbose: "%s. Match an ASCII character case-insensitively: (?i). Lowercase code point: U+%04X, uppercase code point: U+%04X",
	},
	"SingleU": {
		terse:   "%s. Caseless match. Lowercase code point: U+%04X %s",
		verbose: "%s. Match a Unicode character case-insensitively with simple 1:1 case-folding: (?iu). Lowercase code point: U+%04X %s",
	},

	"Slice": {
		terse:   "%s. Sequence (length=%d):",
		verbose: "%s. Match the following sequence of BMP characters (length=%d):",
	},
	"SliceS": {
		terse:   "%s. Sequence (length=%d):",
		verbose: "%s. Match the following sequence, which contains supplementary characters (length=%d):",
	},
	"SliceI": {
		terse:   "%s. Caseless sequence (length=%d):",
		verbose: "%s. Match the following sequence case-insensitively, ASCII only: (?i) (length=%d):",
	},
	"SliceU": {
		terse:   "%s. Caseless sequence (length=%d):",
		verbose: "%s. Match the following sequence case-insensitively with simple 1:1 case-folding: (?iu) (length=%d):",
	},
	"BnM": {
		terse:   "%s. Boyer-Moore (BMP only version) (length=%d)",
		verbose: "%s. Optimized matching with Boyer-Moore search algorithm (BMP only version) (length=%d)",
	},
	"BnMS": {
		terse:   "%s. Boyer-Moore (supplementary version) (length=%d, lengthChar=%d)",
		verbose: "%s. Optimized matching with Boyer-Moore search algorithm (supplementary version) (length=%d, lengthChar=%d)",
	},

	"Branch": {
		terse:   "%s. %d alternatives (in printed order):",
		verbose: "%s. Attempt the following %d alternatives in printed order:",
	},
	"BranchConn": {
		terse:   "%s.",
		verbose: "%s. Continue here after any of the alternatives above",
	},

	"Accept": {
		terse:   "%s. Accept match",
		verbose: "%s. Accept match",
	},

	"Ctype": {
		terse:   "%s. POSIX (US-ASCII): %s",
		verbose: "%s. Match POSIX character class %s (US-ASCII)",
	},
	"Category": {
		terse:   `%s. \p{%s}`,
		verbose: `%s. Match any character with Unicode property %s`,
	},
	"BitClass": {
		terse:   "%s. Match any of these %d character(s):",
		verbose: "%s. Optimized character class with boolean[] to match characters in Latin-1 (code point <= 255). Match any of the following %d character(s):",
	},
	"Dot": {
		terse:   "%s. .",
		verbose: "%s. Match any character except a line terminator: .",
	},
	"UnixDot": {
		terse:   "%s. (?d:.)",
		verbose: `%s. Match any character except '\n', in UNIX_LINES mode: (?d:.)`,
	},
	"All": {
		terse:   "%s. (?s:.)",
		verbose: "%s. Match any character, including line terminators: (?s:.)",
	},

	"Complement": {
		terse:   "%s. A\u0304:",
		verbose: "%s (character class negation). Match any character NOT matched by the following character class:",
	},
	"Difference": {
		terse:   "%s. A \u2216 B:",
		verbose: "%s (character class subtraction). Match any character matched by the 1st character class, but NOT the 2nd character class:",
	},
	"Union": {
		terse:   "%s. A \u222a B:",
		verbose: "%s (character class union). Match any character matched by either character classes below:",
	},
	"Intersection": {
		terse:   "%s. A \u2229 B:",
		verbose: "%s (character class intersection). Match any character matched by both character classes below:",
	},
	"Range": {
		terse:   "%s. U+%04X \u2264 codePoint \u2264 U+%04X",
		verbose: "%s (character range). Match any character within the range from code point U+%04X to code point U+%04X (both ends inclusive)",
	},
	"Range(case-insensitive)": {
		terse:   "%s. U+%04X \u2264 codePoint \u2264 U+%04X (?i)",
		verbose: "%s (character range). Match any character within the range from code point U+%04X to code point U+%04X (both ends inclusive), ignoring case",
	},

	"Curly": {
		terse:   "%s. {%d,%s} %s:",
		verbose: "%s. Match the following atom at least %d and at most %s times (%s quantifier):",
	},
	"GroupCurly(capture=true)": {
		terse:   "%s. {%d,%s} %s, group=%d, local=%d:",
		verbose: "%s. Match the following group at least %d and at most %s times (%s quantifier), capturing group %d (local=%d):",
	},
	"GroupCurly(capture=false)": {
		terse:   "%s. {%d,%s} %s, local=%d:",
		verbose: "%s. Match the following group at least %d and at most %s times (%s quantifier), non-capturing (local=%d):",
	},
	"GroupHead": {
		terse:   "%s. ( local=%d",
		verbose: "%s. Save the position where the group starts (local=%d)",
	},
	"GroupTail(capture=true)": {
		terse:   "%s. ) group=%d, local=%d",
		verbose: "%s. Record the end of capturing group %d (local=%d)",
	},
	"GroupTail(capture=false)": {
		terse:   "%s. ) local=%d",
		verbose: "%s. End of non-capturing group (local=%d)",
	},
	"Loop": {
		terse:   "%s. {%d,%s} greedy loop (count=%d, begin=%d):",
		verbose: "%s. Repeat the following group at least %d and at most %s times, greedily (count local=%d, begin local=%d):",
	},
	"LazyLoop": {
		terse:   "%s. {%d,%s} lazy loop (count=%d, begin=%d):",
		verbose: "%s. Repeat the following group at least %d and at most %s times, reluctantly (count local=%d, begin local=%d):",
	},

	"Pos": {
		terse:   "%s. (?=X):",
		verbose: "%s. Positive lookahead: (?=X). Succeed without consuming input if the following condition matches ahead:",
	},
	"Neg": {
		terse:   "%s. (?!X):",
		verbose: "%s. Negative lookahead: (?!X). Succeed without consuming input if the following condition does NOT match ahead:",
	},
	"Behind": {
		terse:   "%s. (?<=X) [%d, %d]:",
		verbose: "%s. Positive lookbehind: (?<=X). Succeed if the following condition matches text starting between offsets %d and %d behind:",
	},
	"NotBehind": {
		terse:   "%s. (?<!X) [%d, %d]:",
		verbose: "%s. Negative lookbehind: (?<!X). Succeed if the following condition does NOT match text starting between offsets %d and %d behind:",
	},

	"BackRef": {
		terse:   `%s. \%d`,
		verbose: `%s. Match the text last captured by group %d`,
	},
	"CIBackRef": {
		terse:   `%s. (?i)\%d`,
		verbose: `%s. Match the text last captured by group %d, case-insensitively`,
	},
}
