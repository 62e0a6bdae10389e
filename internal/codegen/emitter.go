package codegen

import (
	"fmt"
	"go/token"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/patterndissect/pkg/node"
)

// Config holds the configuration for graph code generation.
type Config struct {
	Package    string
	Name       string // prefix of the generated function, e.g. "Email" generates EmailGraph
	OutputFile string // only needed by Generate
}

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a valid identifier", c.Package)
	}
	if c.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !token.IsIdentifier(c.Name) || !isLetter(c.Name[0]) {
		return fmt.Errorf("name %q must be an identifier starting with a letter", c.Name)
	}
	return nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Emitter generates a function that rebuilds one pattern graph.
type Emitter struct {
	config Config
	file   *jen.File
	vars   map[node.Node]string
}

// New returns an emitter for config.
func New(config Config) *Emitter {
	return &Emitter{
		config: config,
		file:   jen.NewFile(config.Package),
		vars:   make(map[node.Node]string),
	}
}

// FuncName is the name of the generated function.
func (e *Emitter) FuncName() string {
	return UpperFirst(e.config.Name) + FuncSuffix
}

// Generate writes the generated file to the configured output file.
func (e *Emitter) Generate(p *node.Pattern) error {
	if e.config.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if err := e.build(p); err != nil {
		return err
	}
	if err := e.file.Save(e.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save generated code: %w", err)
	}
	return nil
}

// Render writes the generated file to w.
func (e *Emitter) Render(w io.Writer, p *node.Pattern) error {
	if err := e.build(p); err != nil {
		return err
	}
	return e.file.Render(w)
}

func (e *Emitter) build(p *node.Pattern) error {
	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if p == nil || p.Root == nil || p.Accept == nil {
		return fmt.Errorf("pattern has no graph")
	}

	nodes := node.Reachable(p.Root)
	if !contains(nodes, p.Accept) {
		nodes = append(nodes, p.Accept)
	}
	for i, n := range nodes {
		e.vars[n] = NodeVarName(i)
	}

	var body []jen.Code
	for _, n := range nodes {
		decl, err := e.declare(n)
		if err != nil {
			return err
		}
		body = append(body, decl)
	}
	for _, n := range nodes {
		body = append(body, e.links(n)...)
	}
	body = append(body, jen.Return(e.pattern(p)))

	source := LowerFirst(e.config.Name) + "Source"
	e.file.HeaderComment(fmt.Sprintf("Code generated by %s. DO NOT EDIT.", GeneratorTag))
	e.file.Comment(fmt.Sprintf("Pattern %q, flags %s.", p.Source, p.Flags))
	e.file.Const().Id(source).Op("=").Lit(p.Source)
	e.file.Line()
	e.file.Comment(fmt.Sprintf("%s rebuilds the graph compiled from %s (model version %d).", e.FuncName(), source, node.ModelVersion))
	e.file.Func().Id(e.FuncName()).Params().Op("*").Qual(NodePackage, "Pattern").Block(body...)
	return nil
}

func contains(nodes []node.Node, want node.Node) bool {
	for _, n := range nodes {
		if n == want {
			return true
		}
	}
	return false
}

// declare emits nX := &node.Type{...} with every scalar field.
func (e *Emitter) declare(n node.Node) (jen.Code, error) {
	typ, fields, err := literal(n)
	if err != nil {
		return nil, err
	}
	return jen.Id(e.vars[n]).Op(":=").Op("&").Qual(NodePackage, typ).Values(fields), nil
}

// links emits the successor and every auxiliary reference of n.
func (e *Emitter) links(n node.Node) []jen.Code {
	v := e.vars[n]
	var out []jen.Code
	if next := n.Next(); next != nil {
		out = append(out, jen.Id(v).Dot(SetNextName).Call(jen.Id(e.vars[next])))
	}
	set := func(field string, ref node.Node) {
		if ref != nil {
			out = append(out, jen.Id(v).Dot(field).Op("=").Id(e.vars[ref]))
		}
	}

	switch x := n.(type) {
	case *node.Curly:
		set("Atom", x.Atom)
	case *node.GroupCurly:
		set("Atom", x.Atom)
	case *node.Prolog:
		if x.Loop != nil {
			set("Loop", x.Loop)
		}
	case *node.Loop:
		set("Body", x.Body)
	case *node.Branch:
		atoms := make([]jen.Code, len(x.Atoms))
		for i, a := range x.Atoms {
			if a == nil {
				atoms[i] = jen.Nil()
			} else {
				atoms[i] = jen.Id(e.vars[a])
			}
		}
		out = append(out, jen.Id(v).Dot("Atoms").Op("=").Index().Qual(NodePackage, "Node").Values(atoms...))
		if x.Conn != nil {
			set("Conn", x.Conn)
		}
	case *node.Lookahead:
		set("Cond", x.Cond)
	case *node.Lookbehind:
		set("Cond", x.Cond)
	case *node.Complement:
		if x.Operand != nil {
			set("Operand", x.Operand)
		}
	case *node.Union:
		e.operands(&out, v, x.Left, x.Right)
	case *node.Intersection:
		e.operands(&out, v, x.Left, x.Right)
	case *node.Difference:
		e.operands(&out, v, x.Left, x.Right)
	}
	return out
}

func (e *Emitter) operands(out *[]jen.Code, v string, left, right node.CharProperty) {
	if left != nil {
		*out = append(*out, jen.Id(v).Dot("Left").Op("=").Id(e.vars[left]))
	}
	if right != nil {
		*out = append(*out, jen.Id(v).Dot("Right").Op("=").Id(e.vars[right]))
	}
}

func (e *Emitter) pattern(p *node.Pattern) jen.Code {
	names := make([]string, 0, len(p.GroupNames))
	for name := range p.GroupNames {
		names = append(names, name)
	}
	sort.Strings(names)
	groupNames := jen.Dict{}
	for _, name := range names {
		groupNames[jen.Lit(name)] = jen.Lit(p.GroupNames[name])
	}

	return jen.Op("&").Qual(NodePackage, "Pattern").Values(jen.Dict{
		jen.Id("Source"):     jen.Id(LowerFirst(e.config.Name) + "Source"),
		jen.Id("Flags"):      jen.Qual(NodePackage, "Flags").Call(jen.Lit(int(p.Flags))),
		jen.Id("Root"):       jen.Id(e.vars[p.Root]),
		jen.Id("Accept"):     jen.Id(e.vars[p.Accept]),
		jen.Id("GroupCount"): jen.Lit(p.GroupCount),
		jen.Id("GroupNames"): jen.Map(jen.String()).Int().Values(groupNames),
	})
}

// literal returns the type name and scalar fields of n.
func literal(n node.Node) (string, jen.Dict, error) {
	d := jen.Dict{}
	switch x := n.(type) {
	case *node.Accept:
		return "Accept", d, nil
	case *node.Start:
		d[jen.Id("MinLength")] = jen.Lit(x.MinLength)
		if x.Supplementary {
			d[jen.Id("Supplementary")] = jen.True()
		}
		return "Start", d, nil
	case *node.Begin:
		return "Begin", d, nil
	case *node.End:
		return "End", d, nil
	case *node.Caret:
		if x.Unix {
			d[jen.Id("Unix")] = jen.True()
		}
		return "Caret", d, nil
	case *node.Dollar:
		if x.Unix {
			d[jen.Id("Unix")] = jen.True()
		}
		if x.Multiline {
			d[jen.Id("Multiline")] = jen.True()
		}
		return "Dollar", d, nil
	case *node.LastMatch:
		return "LastMatch", d, nil
	case *node.Bound:
		d[jen.Id("Type")] = enum(boundNames, x.Type)
		return "Bound", d, nil
	case *node.Slice:
		d[jen.Id("Buffer")] = runes(x.Buffer)
		d[jen.Id("Fold")] = enum(foldNames, x.Fold)
		return "Slice", d, nil
	case *node.BnM:
		d[jen.Id("Buffer")] = runes(x.Buffer)
		d[jen.Id("LengthInChars")] = jen.Lit(x.LengthInChars)
		return "BnM", d, nil
	case *node.Curly:
		quantified(d, x.Min, x.Max, x.Type)
		return "Curly", d, nil
	case *node.GroupCurly:
		quantified(d, x.Min, x.Max, x.Type)
		d[jen.Id("LocalIndex")] = jen.Lit(x.LocalIndex)
		d[jen.Id("GroupSlot")] = jen.Lit(x.GroupSlot)
		d[jen.Id("Capture")] = jen.Lit(x.Capture)
		return "GroupCurly", d, nil
	case *node.GroupHead:
		d[jen.Id("LocalIndex")] = jen.Lit(x.LocalIndex)
		return "GroupHead", d, nil
	case *node.GroupTail:
		d[jen.Id("LocalIndex")] = jen.Lit(x.LocalIndex)
		d[jen.Id("GroupSlot")] = jen.Lit(x.GroupSlot)
		return "GroupTail", d, nil
	case *node.Prolog:
		return "Prolog", d, nil
	case *node.Loop:
		d[jen.Id("Min")] = jen.Lit(x.Min)
		d[jen.Id("Max")] = bound(x.Max)
		d[jen.Id("CountIndex")] = jen.Lit(x.CountIndex)
		d[jen.Id("BeginIndex")] = jen.Lit(x.BeginIndex)
		if x.Lazy {
			d[jen.Id("Lazy")] = jen.True()
		}
		return "Loop", d, nil
	case *node.Branch:
		return "Branch", d, nil
	case *node.BranchConn:
		return "BranchConn", d, nil
	case *node.Lookahead:
		if x.Negative {
			d[jen.Id("Negative")] = jen.True()
		}
		return "Lookahead", d, nil
	case *node.Lookbehind:
		d[jen.Id("RMin")] = jen.Lit(x.RMin)
		d[jen.Id("RMax")] = bound(x.RMax)
		if x.Negative {
			d[jen.Id("Negative")] = jen.True()
		}
		return "Lookbehind", d, nil
	case *node.BackRef:
		d[jen.Id("GroupSlot")] = jen.Lit(x.GroupSlot)
		if x.Name != "" {
			d[jen.Id("Name")] = jen.Lit(x.Name)
		}
		if x.Fold {
			d[jen.Id("Fold")] = jen.True()
		}
		return "BackRef", d, nil
	case *node.Opaque:
		d[jen.Id("Name")] = jen.Lit(x.Name)
		return "Opaque", d, nil

	case *node.Single:
		d[jen.Id("CodePoint")] = char(x.CodePoint)
		return "Single", d, nil
	case *node.SingleI:
		d[jen.Id("Lower")] = char(x.Lower)
		d[jen.Id("Upper")] = char(x.Upper)
		return "SingleI", d, nil
	case *node.SingleU:
		d[jen.Id("Lower")] = char(x.Lower)
		return "SingleU", d, nil
	case *node.BitClass:
		bits := jen.Dict{}
		for i, set := range x.Bits {
			if set {
				bits[jen.Lit(i)] = jen.True()
			}
		}
		d[jen.Id("Bits")] = jen.Index(jen.Lit(256)).Bool().Values(bits)
		return "BitClass", d, nil
	case *node.Ctype:
		d[jen.Id("Class")] = enum(posixNames, x.Class)
		return "Ctype", d, nil
	case *node.Category:
		d[jen.Id("Name")] = jen.Lit(x.Name)
		return "Category", d, nil
	case *node.Range:
		d[jen.Id("Lower")] = char(x.Lower)
		d[jen.Id("Upper")] = char(x.Upper)
		if x.Fold {
			d[jen.Id("Fold")] = jen.True()
		}
		return "Range", d, nil
	case *node.Dot:
		d[jen.Id("Mode")] = enum(dotNames, x.Mode)
		return "Dot", d, nil
	case *node.Complement:
		return "Complement", d, nil
	case *node.Union:
		return "Union", d, nil
	case *node.Intersection:
		return "Intersection", d, nil
	case *node.Difference:
		return "Difference", d, nil
	}
	return "", nil, fmt.Errorf("cannot generate code for %s node (%T)", n.Kind(), n)
}

func quantified(d jen.Dict, min, max int, q node.Quantifier) {
	d[jen.Id("Min")] = jen.Lit(min)
	d[jen.Id("Max")] = bound(max)
	d[jen.Id("Type")] = enum(quantifierNames, q)
}

func bound(n int) jen.Code {
	if n >= node.Unbounded {
		return jen.Qual(NodePackage, "Unbounded")
	}
	return jen.Lit(n)
}

func char(r rune) jen.Code {
	if utf8.ValidRune(r) {
		return jen.LitRune(r)
	}
	return jen.Lit(int32(r))
}

func runes(rs []rune) jen.Code {
	items := make([]jen.Code, len(rs))
	for i, r := range rs {
		items[i] = char(r)
	}
	return jen.Index().Rune().Values(items...)
}

func enum[T comparable](names map[T]string, v T) jen.Code {
	return jen.Qual(NodePackage, names[v])
}

var (
	boundNames = map[node.BoundType]string{
		node.BoundBoth: "BoundBoth",
		node.BoundNone: "BoundNone",
	}
	foldNames = map[node.Fold]string{
		node.FoldNone:    "FoldNone",
		node.FoldASCII:   "FoldASCII",
		node.FoldUnicode: "FoldUnicode",
	}
	quantifierNames = map[node.Quantifier]string{
		node.Greedy:      "Greedy",
		node.Lazy:        "Lazy",
		node.Possessive:  "Possessive",
		node.Independent: "Independent",
	}
	dotNames = map[node.DotMode]string{
		node.DotModeDefault: "DotModeDefault",
		node.DotModeUnix:    "DotModeUnix",
		node.DotModeAll:     "DotModeAll",
	}
	posixNames = map[node.POSIXClass]string{
		node.ClassASCII:  "ClassASCII",
		node.ClassAlpha:  "ClassAlpha",
		node.ClassDigit:  "ClassDigit",
		node.ClassAlnum:  "ClassAlnum",
		node.ClassUpper:  "ClassUpper",
		node.ClassLower:  "ClassLower",
		node.ClassPunct:  "ClassPunct",
		node.ClassGraph:  "ClassGraph",
		node.ClassPrint:  "ClassPrint",
		node.ClassBlank:  "ClassBlank",
		node.ClassCntrl:  "ClassCntrl",
		node.ClassXDigit: "ClassXDigit",
		node.ClassSpace:  "ClassSpace",
		node.ClassWord:   "ClassWord",
	}
)
