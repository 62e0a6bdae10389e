package compiler

import (
	"strings"
	"unicode"

	"github.com/KromDaniel/patterndissect/pkg/node"
)

// class parses a bracket expression starting at '['. Latin-1 singles are
// collected into one bitmap; ranges, predefined classes and nested classes
// are joined to it with unions. && intersects everything parsed so far
// with the rest of the expression.
func (p *parser) class() (node.CharProperty, error) {
	open := p.pos
	p.next() // [
	negate := false
	if p.raw() == '^' {
		p.pos++
		negate = true
	}

	var (
		acc   node.CharProperty // left operand of the current &&
		cur   node.CharProperty // items since the last &&
		bits  *node.BitClass
		first = true
	)
	add := func(cp node.CharProperty) {
		if cur == nil {
			cur = cp
			return
		}
		cur = p.link(&node.Union{Left: cur, Right: cp})
	}
	addRune := func(r rune) {
		if r < 0x100 && (!p.has(node.CaseInsensitive) || !p.has(node.UnicodeCase) || r < 0x80) {
			if bits == nil {
				bits = p.link(&node.BitClass{}).(*node.BitClass)
				add(bits)
			}
			bits.Add(r, p.has(node.CaseInsensitive))
			return
		}
		add(p.link(singleNode(r, p.fold())))
	}

	for {
		r := p.peek()
		switch {
		case r < 0:
			p.pos = open
			return nil, p.errorf("Unclosed character class")

		case r == ']' && !first:
			p.pos++
			cp := p.intersect(acc, cur)
			if cp == nil {
				// only && separators: matches nothing, like an empty union
				cp = p.link(&node.BitClass{})
			}
			if negate {
				cp = p.link(&node.Complement{Operand: cp})
			}
			return cp, nil

		case r == '[':
			nested, err := p.class()
			if err != nil {
				return nil, err
			}
			add(nested)

		case r == '&' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '&':
			p.pos += 2
			acc = p.intersect(acc, cur)
			cur, bits = nil, nil

		case r == '\\':
			p.pos++
			if p.eof() {
				return nil, p.errorf("Unclosed character class")
			}
			if p.raw() == 'Q' {
				p.pos++
				end := strings.Index(string(p.src[p.pos:]), `\E`)
				var quoted []rune
				if end < 0 {
					quoted = p.src[p.pos:]
				} else {
					quoted = []rune(string(p.src[p.pos:])[:end])
				}
				for _, q := range quoted {
					addRune(q)
				}
				p.pos += len(quoted)
				if end >= 0 {
					p.pos += 2
				}
				break
			}
			cp, ok, err := p.predefined()
			if err != nil {
				return nil, err
			}
			if ok {
				add(cp)
				break
			}
			lo, err := p.escapedRune()
			if err != nil {
				return nil, err
			}
			if err := p.rangeOrSingle(lo, add, addRune); err != nil {
				return nil, err
			}

		default:
			p.pos++
			if err := p.rangeOrSingle(r, add, addRune); err != nil {
				return nil, err
			}
		}
		first = false
	}
}

// rangeOrSingle finishes a class item whose first code point is lo.
func (p *parser) rangeOrSingle(lo rune, add func(node.CharProperty), addRune func(rune)) error {
	if p.peek() != '-' || p.pos+1 >= len(p.src) {
		addRune(lo)
		return nil
	}
	switch p.src[p.pos+1] {
	case ']', '[':
		// trailing '-' is literal
		addRune(lo)
		return nil
	}
	p.pos++ // -
	var hi rune
	if p.raw() == '\\' {
		p.pos++
		if p.eof() {
			return p.errorf("Illegal character range")
		}
		r, err := p.escapedRune()
		if err != nil {
			return err
		}
		hi = r
	} else {
		hi = p.next()
	}
	if hi < lo {
		return p.errorf("Illegal character range")
	}
	if lo == hi {
		addRune(lo)
		return nil
	}
	add(p.link(&node.Range{Lower: lo, Upper: hi, Fold: p.has(node.CaseInsensitive)}))
	return nil
}

func (p *parser) intersect(left, right node.CharProperty) node.CharProperty {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	}
	return p.link(&node.Intersection{Left: left, Right: right})
}

// predefined parses a predefined class escape at pos (after '\'). It
// reports false, leaving pos unchanged, when the escape is not one.
func (p *parser) predefined() (node.CharProperty, bool, error) {
	c := p.src[p.pos]
	var cp node.CharProperty
	switch unicode.ToLower(c) {
	case 'd':
		cp = p.link(&node.Ctype{Class: node.ClassDigit})
	case 'w':
		cp = p.link(&node.Ctype{Class: node.ClassWord})
	case 's':
		cp = p.link(&node.Ctype{Class: node.ClassSpace})
	case 'h':
		cp = p.link(&node.Category{Name: "HorizontalWhiteSpace"})
	case 'v':
		cp = p.link(&node.Category{Name: "VerticalWhiteSpace"})
	case 'p':
		p.pos++
		prop, err := p.property()
		if err != nil {
			return nil, false, err
		}
		if c == 'P' {
			prop = p.link(&node.Complement{Operand: prop})
		}
		return prop, true, nil
	default:
		return nil, false, nil
	}
	p.pos++
	if unicode.IsUpper(c) {
		cp = p.link(&node.Complement{Operand: cp})
	}
	return cp, true, nil
}

// property parses the name after \p or \P: a single letter or {Name}.
func (p *parser) property() (node.CharProperty, error) {
	if p.eof() {
		return nil, p.errorf("Illegal/unsupported escape sequence")
	}
	var name string
	if p.src[p.pos] == '{' {
		end := strings.IndexRune(string(p.src[p.pos:]), '}')
		if end < 0 {
			return nil, p.errorf("Unclosed character family")
		}
		name = string(p.src[p.pos:])[1:end]
		p.pos += len([]rune(string(p.src[p.pos:])[:end])) + 1
	} else {
		name = string(p.src[p.pos])
		p.pos++
	}
	if name == "" {
		return nil, p.errorf("Empty character family")
	}

	if class, ok := posixProperty(name); ok {
		return p.link(&node.Ctype{Class: class}), nil
	}
	if canonical, ok := unicodeProperty(name); ok {
		return p.link(&node.Category{Name: canonical}), nil
	}
	return nil, p.errorf("Unknown character property name {" + name + "}")
}

var posixProperties = map[string]node.POSIXClass{
	"ASCII":  node.ClassASCII,
	"Alpha":  node.ClassAlpha,
	"Digit":  node.ClassDigit,
	"Alnum":  node.ClassAlnum,
	"Upper":  node.ClassUpper,
	"Lower":  node.ClassLower,
	"Punct":  node.ClassPunct,
	"Graph":  node.ClassGraph,
	"Print":  node.ClassPrint,
	"Blank":  node.ClassBlank,
	"Cntrl":  node.ClassCntrl,
	"XDigit": node.ClassXDigit,
	"Space":  node.ClassSpace,
}

func posixProperty(name string) (node.POSIXClass, bool) {
	c, ok := posixProperties[name]
	return c, ok
}

// unicodeProperty resolves a general category, script, block or binary
// property name to the name printed for it.
func unicodeProperty(name string) (string, bool) {
	if key, value, ok := strings.Cut(name, "="); ok {
		switch strings.ToLower(key) {
		case "gc", "general_category":
			_, found := unicode.Categories[value]
			return value, found
		case "sc", "script":
			return lookupFold(unicode.Scripts, value)
		case "blk", "block":
			return "In" + value, value != ""
		}
		return "", false
	}
	if _, ok := unicode.Categories[name]; ok {
		return name, true
	}
	if rest, ok := strings.CutPrefix(name, "In"); ok && rest != "" {
		return name, true
	}
	if rest, ok := strings.CutPrefix(name, "Is"); ok {
		if _, ok := unicode.Categories[rest]; ok {
			return rest, true
		}
		if s, ok := lookupFold(unicode.Scripts, rest); ok {
			return s, true
		}
		if s, ok := lookupFold(unicode.Properties, rest); ok {
			return s, true
		}
	}
	if rest, ok := strings.CutPrefix(name, "java"); ok && rest != "" {
		return name, true
	}
	return "", false
}

func lookupFold(table map[string]*unicode.RangeTable, name string) (string, bool) {
	if _, ok := table[name]; ok {
		return name, true
	}
	for k := range table {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}
