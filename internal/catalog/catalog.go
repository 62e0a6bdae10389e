// Package catalog maps node kinds to the message templates printed by the
// dissector. It holds data only: one terse and one verbose template per key.
package catalog

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/patterndissect/pkg/node"
)

// Verbosity selects the template set used for a whole dissection.
type Verbosity uint8

const (
	// Verbose prints a prose description followed by the symbol.
	Verbose Verbosity = iota
	// Terse prints the symbol only.
	Terse
)

func (v Verbosity) String() string {
	if v == Terse {
		return "terse"
	}
	return "verbose"
}

// ParseVerbosity accepts "terse"/"simple" and "verbose"/"explanatory".
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terse", "simple":
		return Terse, nil
	case "verbose", "explanatory", "":
		return Verbose, nil
	}
	return Verbose, fmt.Errorf("unknown verbosity %q: must be 'terse' or 'verbose'", s)
}

// Key selects a template. Most keys are a bare kind label; kinds whose
// wording depends on a mode use a compound key built by the helpers below.
type Key string

// KindKey returns the bare key of a kind.
func KindKey(k node.Kind) Key {
	return Key(k.String())
}

// DollarKey keys Dollar and UnixDollar by their multiline mode.
func DollarKey(k node.Kind, multiline bool) Key {
	return Key(fmt.Sprintf("%s(multiline=%t)", k, multiline))
}

// BoundKey keys a word boundary assertion by its type.
func BoundKey(t node.BoundType) Key {
	if t == node.BoundNone {
		return "Bound(none)"
	}
	return "Bound(both)"
}

// CaptureKey keys GroupCurly and GroupTail by whether the group captures.
func CaptureKey(k node.Kind, capture bool) Key {
	return Key(fmt.Sprintf("%s(capture=%t)", k, capture))
}

// RangeKey keys a range by its case sensitivity.
func RangeKey(fold bool) Key {
	if fold {
		return "Range(case-insensitive)"
	}
	return "Range"
}

// Diagnostic is the placeholder printed for a construct with no template.
func Diagnostic(name string) string {
	return "DEBUG node: " + name
}

// Catalog formats lines for one verbosity.
type Catalog struct {
	verbosity Verbosity
}

// New returns a catalog for v.
func New(v Verbosity) *Catalog {
	return &Catalog{verbosity: v}
}

// Verbosity returns the verbosity the catalog was built for.
func (c *Catalog) Verbosity() Verbosity {
	return c.verbosity
}

// Lookup returns the template for key.
func (c *Catalog) Lookup(key Key) (string, bool) {
	e, ok := templates[key]
	if !ok {
		return "", false
	}
	if c.verbosity == Terse {
		return e.terse, true
	}
	return e.verbose, true
}

// Format fills the template for key. The label is always the first
// argument. A key without a template yields a diagnostic line instead.
func (c *Catalog) Format(key Key, label string, args ...any) string {
	tmpl, ok := c.Lookup(key)
	if !ok {
		return Diagnostic(string(key))
	}
	return fmt.Sprintf(tmpl, append([]any{label}, args...)...)
}

// Has reports whether key has a template.
func Has(key Key) bool {
	_, ok := templates[key]
	return ok
}
