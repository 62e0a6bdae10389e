package compiler

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/KromDaniel/patterndissect/pkg/node"
)

// parser reads the backtracking-engine dialect: Perl-style syntax plus
// possessive quantifiers, atomic groups, lookbehind, \Z, \G and class
// intersection with &&.
type parser struct {
	src    []rune
	source string
	pos    int
	flags  node.Flags

	groups int
	names  map[string]int
	accept *node.Accept
}

func newParser(source string, flags node.Flags, accept *node.Accept) *parser {
	return &parser{
		src:    []rune(source),
		source: source,
		flags:  flags,
		names:  make(map[string]int),
		accept: accept,
	}
}

func (p *parser) errorf(msg string) *Error {
	return &Error{Msg: msg, Pattern: p.source, Index: p.pos}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

// peek returns the next significant rune, skipping whitespace and
// comments in Comments mode. It returns -1 at the end of input.
func (p *parser) peek() rune {
	if p.has(node.Comments) {
		p.skipComments()
	}
	if p.eof() {
		return -1
	}
	return p.src[p.pos]
}

func (p *parser) skipComments() {
	for !p.eof() {
		r := p.src[p.pos]
		switch {
		case r == '#':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		case unicode.IsSpace(r):
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) next() rune {
	r := p.peek()
	if r >= 0 {
		p.pos++
	}
	return r
}

// raw returns the rune at pos without comment skipping.
func (p *parser) raw() rune {
	if p.eof() {
		return -1
	}
	return p.src[p.pos]
}

func (p *parser) has(f node.Flags) bool { return p.flags&f != 0 }

func (p *parser) fold() node.Fold {
	switch {
	case !p.has(node.CaseInsensitive):
		return node.FoldNone
	case p.has(node.UnicodeCase):
		return node.FoldUnicode
	}
	return node.FoldASCII
}

// parse reads the whole pattern.
func (p *parser) parse() (*term, error) {
	if p.has(node.Literal) {
		if len(p.src) == 0 {
			return &term{op: opEmpty}, nil
		}
		return &term{op: opLiteral, runes: append([]rune(nil), p.src...), fold: p.fold()}, nil
	}
	t, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if r := p.peek(); r == ')' {
		return nil, p.errorf("Unmatched closing ')'")
	}
	return t, nil
}

func (p *parser) alternation() (*term, error) {
	first, err := p.sequence()
	if err != nil {
		return nil, err
	}
	if p.peek() != '|' {
		return first, nil
	}
	alt := &term{op: opAlternate, subs: []*term{first}}
	for p.peek() == '|' {
		p.next()
		t, err := p.sequence()
		if err != nil {
			return nil, err
		}
		alt.subs = append(alt.subs, t)
	}
	return alt, nil
}

func (p *parser) sequence() (*term, error) {
	var subs []*term
	for {
		r := p.peek()
		if r < 0 || r == '|' || r == ')' {
			break
		}
		t, err := p.repeat()
		if err != nil {
			return nil, err
		}
		if t != nil {
			subs = append(subs, t)
		}
	}
	subs = mergeLiterals(subs)
	switch len(subs) {
	case 0:
		return &term{op: opEmpty}, nil
	case 1:
		return subs[0], nil
	}
	return &term{op: opConcat, subs: subs}, nil
}

// mergeLiterals joins adjacent unquantified literals with the same folding
// into one literal, which lowers to a slice.
func mergeLiterals(subs []*term) []*term {
	var out []*term
	for _, t := range subs {
		if t.op == opLiteral && len(out) > 0 {
			last := out[len(out)-1]
			if last.op == opLiteral && last.fold == t.fold {
				last.runes = append(last.runes, t.runes...)
				continue
			}
		}
		if t.op == opLiteral {
			t = &term{op: opLiteral, runes: append([]rune(nil), t.runes...), fold: t.fold}
		}
		out = append(out, t)
	}
	return out
}

func (p *parser) repeat() (*term, error) {
	atom, err := p.atom()
	if err != nil || atom == nil {
		return atom, err
	}

	var min, max int
	switch p.peek() {
	case '?':
		p.next()
		min, max = 0, 1
	case '*':
		p.next()
		min, max = 0, node.Unbounded
	case '+':
		p.next()
		min, max = 1, node.Unbounded
	case '{':
		min, max, err = p.braces()
		if err != nil {
			return nil, err
		}
	default:
		return atom, nil
	}

	quant := node.Greedy
	switch p.raw() {
	case '?':
		p.pos++
		quant = node.Lazy
	case '+':
		p.pos++
		quant = node.Possessive
	}
	return &term{op: opRepeat, subs: []*term{atom}, min: min, max: max, quant: quant}, nil
}

// braces parses {n}, {n,} or {n,m}.
func (p *parser) braces() (int, int, error) {
	start := p.pos
	p.next() // {
	min, ok := p.number()
	if !ok {
		p.pos = start
		return 0, 0, p.errorf("Illegal repetition")
	}
	max := min
	if p.raw() == ',' {
		p.pos++
		if p.raw() == '}' {
			max = node.Unbounded
		} else if max, ok = p.number(); !ok {
			return 0, 0, p.errorf("Illegal repetition range")
		}
	}
	if p.raw() != '}' {
		return 0, 0, p.errorf("Unclosed counted closure")
	}
	p.pos++
	if max < min {
		return 0, 0, p.errorf("Illegal repetition range")
	}
	return min, max, nil
}

func (p *parser) number() (int, bool) {
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil || n >= node.Unbounded {
		return 0, false
	}
	return n, true
}

// atom parses one atom. A pure flag group such as (?i) yields nil.
func (p *parser) atom() (*term, error) {
	r := p.peek()
	switch r {
	case '(':
		p.next()
		return p.group()
	case '[':
		cp, err := p.class()
		if err != nil {
			return nil, err
		}
		return &term{op: opClass, class: cp}, nil
	case '.':
		p.next()
		mode := node.DotModeDefault
		switch {
		case p.has(node.DotAll):
			mode = node.DotModeAll
		case p.has(node.UnixLines):
			mode = node.DotModeUnix
		}
		return &term{op: opClass, class: p.link(&node.Dot{Mode: mode})}, nil
	case '^':
		p.next()
		if p.has(node.Multiline) {
			return &term{op: opCaret, unix: p.has(node.UnixLines)}, nil
		}
		return &term{op: opBegin}, nil
	case '$':
		p.next()
		return &term{op: opDollar, unix: p.has(node.UnixLines), multiline: p.has(node.Multiline)}, nil
	case '\\':
		p.next()
		return p.escape()
	case '*', '+', '?':
		return nil, p.errorf("Dangling meta character '" + string(r) + "'")
	case '{':
		return nil, p.errorf("Illegal repetition")
	}
	p.next()
	return &term{op: opLiteral, runes: []rune{r}, fold: p.fold()}, nil
}

// group parses the construct after '('.
func (p *parser) group() (*term, error) {
	saved := p.flags
	defer func() { p.flags = saved }()

	t := &term{op: opGroup}
	if p.raw() == '?' {
		p.pos++
		switch c := p.raw(); c {
		case ':':
			p.pos++
		case '>':
			p.pos++
			t = &term{op: opIndependent}
		case '=', '!':
			p.pos++
			t = &term{op: opLook, negative: c == '!'}
		case '<':
			p.pos++
			switch p.raw() {
			case '=', '!':
				t = &term{op: opLook, behind: true, negative: p.raw() == '!'}
				p.pos++
			default:
				name, err := p.groupName('>')
				if err != nil {
					return nil, err
				}
				if _, dup := p.names[name]; dup {
					return nil, p.errorf("Named capturing group <" + name + "> is already defined")
				}
				p.groups++
				p.names[name] = p.groups
				t.capture, t.group, t.name = true, p.groups, name
			}
		default:
			done, err := p.inlineFlags()
			if err != nil {
				return nil, err
			}
			if done {
				// (?flags) applies to the rest of the enclosing group
				saved = p.flags
				return nil, nil
			}
		}
	} else {
		p.groups++
		t.capture, t.group = true, p.groups
	}

	body, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if p.next() != ')' {
		return nil, p.errorf("Unclosed group")
	}
	t.subs = []*term{body}

	if t.op == opLook && t.behind {
		if w := study(body); !w.bounded {
			return nil, p.errorf("Look-behind group does not have an obvious maximum length")
		}
	}
	return t, nil
}

// inlineFlags parses (?imsdux-imsdux) or the prefix of (?imsdux:X). It
// returns true when the group ended with ')'.
func (p *parser) inlineFlags() (bool, error) {
	enable := true
	for !p.eof() {
		c := p.src[p.pos]
		p.pos++
		var f node.Flags
		switch c {
		case 'i':
			f = node.CaseInsensitive
		case 'm':
			f = node.Multiline
		case 's':
			f = node.DotAll
		case 'd':
			f = node.UnixLines
		case 'u':
			f = node.UnicodeCase
		case 'x':
			f = node.Comments
		case '-':
			enable = false
			continue
		case ')':
			return true, nil
		case ':':
			return false, nil
		default:
			p.pos--
			return false, p.errorf("Unknown inline modifier")
		}
		if enable {
			p.flags |= f
		} else {
			p.flags &^= f
		}
	}
	return false, p.errorf("Unknown group type")
}

func (p *parser) groupName(end rune) (string, error) {
	start := p.pos
	for !p.eof() && p.src[p.pos] != end {
		r := p.src[p.pos]
		if !(isASCIILetter(r) || (p.pos > start && r >= '0' && r <= '9')) {
			return "", p.errorf("named capturing group is missing trailing '" + string(end) + "'")
		}
		p.pos++
	}
	if p.eof() || p.pos == start {
		return "", p.errorf("named capturing group is missing trailing '" + string(end) + "'")
	}
	name := string(p.src[start:p.pos])
	p.pos++
	return name, nil
}

// escape parses the construct after a backslash outside a class.
func (p *parser) escape() (*term, error) {
	if p.eof() {
		return nil, p.errorf("Unexpected internal error")
	}
	c := p.src[p.pos]
	switch c {
	case 'A':
		p.pos++
		return &term{op: opBegin}, nil
	case 'z':
		p.pos++
		return &term{op: opEnd}, nil
	case 'Z':
		p.pos++
		return &term{op: opDollar, unix: p.has(node.UnixLines)}, nil
	case 'G':
		p.pos++
		return &term{op: opLastMatch}, nil
	case 'b':
		p.pos++
		return &term{op: opBound, bound: node.BoundBoth}, nil
	case 'B':
		p.pos++
		return &term{op: opBound, bound: node.BoundNone}, nil
	case 'R':
		p.pos++
		return &term{op: opOpaque, name: "LineEnding"}, nil
	case 'X':
		p.pos++
		return &term{op: opOpaque, name: "GraphemeCluster"}, nil
	case 'Q':
		p.pos++
		end := strings.Index(string(p.src[p.pos:]), `\E`)
		var quoted []rune
		if end < 0 {
			quoted = p.src[p.pos:]
			p.pos = len(p.src)
		} else {
			quoted = []rune(string(p.src[p.pos:])[:end])
			p.pos += len(quoted) + 2
		}
		if len(quoted) == 0 {
			return nil, nil
		}
		return &term{op: opLiteral, runes: append([]rune(nil), quoted...), fold: p.fold()}, nil
	case 'k':
		p.pos++
		if p.raw() != '<' {
			return nil, p.errorf(`\k is not followed by '<' for named capturing group`)
		}
		p.pos++
		name, err := p.groupName('>')
		if err != nil {
			return nil, err
		}
		group, ok := p.names[name]
		if !ok {
			return nil, p.errorf("named capturing group <" + name + "> does not exist")
		}
		return &term{op: opBackRef, group: group, name: name, refFold: p.has(node.CaseInsensitive)}, nil
	}

	if c >= '1' && c <= '9' {
		p.pos++
		ref := int(c - '0')
		// take more digits while they still name an existing group
		for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			more := ref*10 + int(p.src[p.pos]-'0')
			if more > p.groups {
				break
			}
			ref = more
			p.pos++
		}
		return &term{op: opBackRef, group: ref, refFold: p.has(node.CaseInsensitive)}, nil
	}

	if cp, ok, err := p.predefined(); err != nil {
		return nil, err
	} else if ok {
		return &term{op: opClass, class: cp}, nil
	}

	r, err := p.escapedRune()
	if err != nil {
		return nil, err
	}
	return &term{op: opLiteral, runes: []rune{r}, fold: p.fold()}, nil
}

// escapedRune decodes a single-code-point escape at pos (after '\').
func (p *parser) escapedRune() (rune, error) {
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'f':
		return '\f', nil
	case 'a':
		return '\a', nil
	case 'e':
		return 0x1B, nil
	case '0':
		return p.octal()
	case 'x':
		return p.hex()
	case 'u':
		return p.unicodeEscape()
	case 'c':
		if p.eof() {
			return 0, p.errorf("Illegal control escape sequence")
		}
		r := p.src[p.pos]
		p.pos++
		return r ^ 64, nil
	}
	if isASCIILetter(c) || (c >= '0' && c <= '9') {
		p.pos--
		return 0, p.errorf("Illegal/unsupported escape sequence")
	}
	return c, nil
}

func (p *parser) octal() (rune, error) {
	n := 0
	digits := 0
	for !p.eof() && digits < 3 {
		d := p.src[p.pos]
		if d < '0' || d > '7' {
			break
		}
		next := n*8 + int(d-'0')
		if next > 0377 {
			break
		}
		n = next
		digits++
		p.pos++
	}
	if digits == 0 {
		return 0, p.errorf("Illegal octal escape sequence")
	}
	return rune(n), nil
}

func (p *parser) hex() (rune, error) {
	if p.raw() == '{' {
		p.pos++
		start := p.pos
		for !p.eof() && p.src[p.pos] != '}' {
			p.pos++
		}
		if p.eof() {
			return 0, p.errorf("Unclosed hexadecimal escape sequence")
		}
		v, err := strconv.ParseUint(string(p.src[start:p.pos]), 16, 32)
		p.pos++
		if err != nil || v > unicode.MaxRune {
			return 0, p.errorf("Hexadecimal codepoint is too big")
		}
		return rune(v), nil
	}
	return p.hexDigits(2, "Illegal hexadecimal escape sequence")
}

func (p *parser) hexDigits(n int, msg string) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf(msg)
	}
	v, err := strconv.ParseUint(string(p.src[p.pos:p.pos+n]), 16, 32)
	if err != nil {
		return 0, p.errorf(msg)
	}
	p.pos += n
	return rune(v), nil
}

// unicodeEscape decodes \uXXXX, joining an escaped surrogate pair.
func (p *parser) unicodeEscape() (rune, error) {
	r, err := p.hexDigits(4, "Illegal Unicode escape sequence")
	if err != nil {
		return 0, err
	}
	if r >= 0xD800 && r <= 0xDBFF && p.pos+6 <= len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
		save := p.pos
		p.pos += 2
		lo, err := p.hexDigits(4, "Illegal Unicode escape sequence")
		if err == nil && lo >= 0xDC00 && lo <= 0xDFFF {
			return 0x10000 + (r-0xD800)<<10 + (lo - 0xDC00), nil
		}
		p.pos = save
	}
	return r, nil
}

// link points a class node's successor at the accept node, as every node
// that is not on the primary path must.
func (p *parser) link(cp node.CharProperty) node.CharProperty {
	cp.SetNext(p.accept)
	return cp
}
