// Package codegen emits Go source that rebuilds a compiled pattern graph,
// so a graph can be checked in and dissected without the compiler.
package codegen

import "fmt"

// Import path of the node model referenced by generated code.
const NodePackage = "github.com/KromDaniel/patterndissect/pkg/node"

// Names used in generated code
const (
	FuncSuffix   = "Graph"
	SetNextName  = "SetNext"
	GeneratorTag = "patterndissect"
)

// NodeVarName returns the variable holding the node with the given
// discovery index.
func NodeVarName(id int) string {
	return fmt.Sprintf("n%d", id)
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
