// Package dissect prints the internal structure of a compiled pattern as
// indented text lines, one per construct.
//
//	d, err := dissect.New(dissect.Options{Verbosity: "terse"})
//	if err != nil {
//		return err
//	}
//	out, err := d.DissectSource(`^abc$`, 0)
//	if err != nil {
//		return err
//	}
//	fmt.Print(out)
package dissect

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KromDaniel/patterndissect/internal/catalog"
	"github.com/KromDaniel/patterndissect/internal/compiler"
	"github.com/KromDaniel/patterndissect/internal/trace"
	"github.com/KromDaniel/patterndissect/internal/walker"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

// Options configures a Dissector.
type Options struct {
	// Verbosity selects the line templates: "terse" (symbolic) or
	// "verbose" (prose plus symbol). Empty means verbose.
	Verbosity string

	// Logger receives debug events from compilation and traversal. Nil
	// discards them.
	Logger *slog.Logger
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if _, err := catalog.ParseVerbosity(o.Verbosity); err != nil {
		return fmt.Errorf("verbosity: %w", err)
	}
	return nil
}

// Dissector renders patterns with one fixed verbosity. It holds no
// traversal state, so one Dissector may serve concurrent callers as long
// as they dissect different graphs.
type Dissector struct {
	cat      *catalog.Catalog
	logger   *slog.Logger
	compiler *compiler.Compiler
}

// New returns a Dissector for opts.
func New(opts Options) (*Dissector, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	v, _ := catalog.ParseVerbosity(opts.Verbosity)
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dissector{
		cat:      catalog.New(v),
		logger:   logger,
		compiler: compiler.New(logger),
	}, nil
}

// Verbosity returns the verbosity the Dissector was created with.
func (d *Dissector) Verbosity() catalog.Verbosity {
	return d.cat.Verbosity()
}

// Dissection is the result of dissecting one pattern.
type Dissection struct {
	// Pattern is the pattern's string form, printed before the lines.
	Pattern string
	Lines   []trace.Line
}

// String renders the header and every line, each terminated by a newline.
func (r *Dissection) String() string {
	var b strings.Builder
	b.WriteString(r.Pattern)
	b.WriteByte('\n')
	for _, l := range r.Lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the rendered dissection to w.
func (r *Dissection) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// Dissect prints the structure of p.
func (d *Dissector) Dissect(p *node.Pattern) (*Dissection, error) {
	if p == nil {
		return nil, fmt.Errorf("dissect: nil pattern")
	}
	var c trace.Collector
	if err := d.walk(p, &c); err != nil {
		return nil, err
	}
	return &Dissection{Pattern: p.String(), Lines: c.Lines}, nil
}

// DissectSource compiles src in the backtracking dialect and dissects the
// result. Compilation errors are returned wrapped; errors.As reaches the
// *compiler.Error.
func (d *Dissector) DissectSource(src string, flags node.Flags) (*Dissection, error) {
	p, err := d.compiler.Compile(src, flags)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	return d.Dissect(p)
}

// DissectRE2 compiles src with RE2 syntax and dissects the result.
func (d *Dissector) DissectRE2(src string) (*Dissection, error) {
	p, err := d.compiler.CompileRE2(src)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	return d.Dissect(p)
}

// Stream writes the header and each line to w as soon as it is produced,
// followed by a blank line. On a consistency error the lines already
// written stay written.
func (d *Dissector) Stream(w io.Writer, p *node.Pattern) error {
	if p == nil {
		return fmt.Errorf("dissect: nil pattern")
	}
	if _, err := fmt.Fprintln(w, p.String()); err != nil {
		return err
	}
	if err := d.walk(p, trace.NewWriter(w)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func (d *Dissector) walk(p *node.Pattern, sink trace.Sink) error {
	d.logger.Debug("Dissecting pattern.", "pattern", p.Source, "flags", p.Flags.String(), "verbosity", d.cat.Verbosity().String())
	wk := walker.New(d.cat, sink, p.Accept, d.logger)
	if err := wk.Walk(p.Root, 0); err != nil {
		return fmt.Errorf("dissect %q: %w", p.Source, err)
	}
	return nil
}
