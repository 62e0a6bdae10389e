// Package cli parses the patterndissect command line.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KromDaniel/patterndissect/internal/catalog"
	"github.com/KromDaniel/patterndissect/internal/codegen"
	"github.com/KromDaniel/patterndissect/internal/config"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// arrayFlags collects a repeated string flag.
type arrayFlags []string

func (i *arrayFlags) String() string {
	return strings.Join(*i, ", ")
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// Config is the parsed command line.
type Config struct {
	Patterns   []string
	ConfigFile string
	Verbosity  string // empty unless -verbosity was given
	Flags      node.Flags
	Dialect    config.Dialect

	EmitGo  string
	Package string
	Name    string

	LogLevel  string
	LogFormat string
}

// Parse processes command-line arguments. It returns the parsed Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("patterndissect", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
patterndissect - prints the node graph of a compiled regular expression.

Usage:
  patterndissect [options] [PATTERN...]

Arguments:
  PATTERN
    A pattern to compile and dissect. May be repeated.

Options:
`)
		flagSet.PrintDefaults()
	}

	var patterns arrayFlags
	flagSet.Var(&patterns, "p", "Pattern to dissect (can be repeated).")
	configFlag := flagSet.String("config", "", "Path to an HCL batch file listing patterns.")
	verbosityFlag := flagSet.String("verbosity", "", "Line templates: 'terse' or 'verbose' (default verbose, or the batch file's).")
	flagsFlag := flagSet.String("flags", "", "Comma-separated compile flags: "+strings.Join(node.FlagNames(), ", ")+".")
	dialectFlag := flagSet.String("dialect", "java", "Pattern syntax: 'java' or 're2'.")
	emitFlag := flagSet.String("emit-go", "", "Write Go code rebuilding the graph of the single pattern to this file.")
	pkgFlag := flagSet.String("package", "graphs", "Package name of the generated Go file.")
	nameFlag := flagSet.String("name", "Pattern", "Name prefix of the generated function.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg := &Config{
		Patterns:   append(patterns, flagSet.Args()...),
		ConfigFile: *configFlag,
		EmitGo:     *emitFlag,
		Package:    *pkgFlag,
		Name:       *nameFlag,
	}

	if len(cfg.Patterns) == 0 && cfg.ConfigFile == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	if *verbosityFlag != "" {
		if _, err := catalog.ParseVerbosity(*verbosityFlag); err != nil {
			return nil, false, &ExitError{Code: 2, Message: "invalid verbosity: " + err.Error()}
		}
		cfg.Verbosity = *verbosityFlag
	}

	if *flagsFlag != "" {
		flags, err := config.ParseFlags(strings.Split(*flagsFlag, ","))
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: "invalid flags: " + err.Error()}
		}
		cfg.Flags = flags
	}

	dialect, err := config.ParseDialect(*dialectFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	cfg.Dialect = dialect
	if dialect == config.DialectRE2 && cfg.Flags != 0 {
		return nil, false, &ExitError{Code: 2, Message: "-flags cannot be combined with -dialect re2"}
	}

	if cfg.EmitGo != "" {
		if len(cfg.Patterns) != 1 || cfg.ConfigFile != "" {
			return nil, false, &ExitError{Code: 2, Message: "-emit-go needs exactly one pattern and no -config"}
		}
		gen := codegen.Config{Package: cfg.Package, Name: cfg.Name, OutputFile: cfg.EmitGo}
		if err := gen.Validate(); err != nil {
			return nil, false, &ExitError{Code: 2, Message: "invalid -emit-go options: " + err.Error()}
		}
	}

	cfg.LogFormat = strings.ToLower(*logFormatFlag)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.LogLevel = strings.ToLower(*logLevelFlag)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return cfg, false, nil
}

// NewLogger creates a logger writing to outW. It does not set the global
// logger.
func NewLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}
