package node

import "strings"

// Flags are the compile flags a pattern was built with.
type Flags uint32

const (
	// Literal treats the whole source as a literal code point sequence.
	Literal Flags = 1 << iota
	CaseInsensitive
	Multiline
	DotAll
	UnixLines
	UnicodeCase
	Comments
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Literal, "literal"},
	{CaseInsensitive, "case-insensitive"},
	{Multiline, "multiline"},
	{DotAll, "dotall"},
	{UnixLines, "unix-lines"},
	{UnicodeCase, "unicode-case"},
	{Comments, "comments"},
}

// String lists the set flags separated by '|'.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseFlag returns the flag with the given name as printed by Flags.String.
func ParseFlag(name string) (Flags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}

// FlagNames returns the names accepted by ParseFlag.
func FlagNames() []string {
	names := make([]string, len(flagNames))
	for i, fn := range flagNames {
		names[i] = fn.name
	}
	return names
}

// Pattern is a fully built graph together with its source form.
type Pattern struct {
	Source     string
	Flags      Flags
	Root       Node
	Accept     *Accept
	GroupCount int
	GroupNames map[string]int
}

// String returns the canonical string form of the pattern.
func (p *Pattern) String() string {
	return p.Source
}
