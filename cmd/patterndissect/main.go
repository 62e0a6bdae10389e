package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/KromDaniel/patterndissect/internal/cli"
	"github.com/KromDaniel/patterndissect/internal/codegen"
	"github.com/KromDaniel/patterndissect/internal/compiler"
	"github.com/KromDaniel/patterndissect/internal/config"
	"github.com/KromDaniel/patterndissect/pkg/dissect"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run dissects every requested pattern to outW; logs go to logW.
func run(outW, logW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	logger := cli.NewLogger(cfg.LogLevel, cfg.LogFormat, logW)

	jobs, verbosity, err := collect(cfg, logger)
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}

	d, err := dissect.New(dissect.Options{Verbosity: verbosity, Logger: logger})
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	comp := compiler.New(logger)

	for _, job := range jobs {
		logger.Info("Dissecting pattern.", "name", job.Name, "dialect", job.Dialect, "flags", job.Flags)
		p, err := compile(comp, job)
		if err != nil {
			return &cli.ExitError{Code: 1, Message: fmt.Sprintf("%s: %v", job.Name, err)}
		}
		if err := d.Stream(outW, p); err != nil {
			return &cli.ExitError{Code: 1, Message: fmt.Sprintf("%s: %v", job.Name, err)}
		}
		if cfg.EmitGo != "" {
			gen := codegen.New(codegen.Config{Package: cfg.Package, Name: cfg.Name, OutputFile: cfg.EmitGo})
			if err := gen.Generate(p); err != nil {
				return &cli.ExitError{Code: 1, Message: err.Error()}
			}
			logger.Info("Wrote graph code.", "file", cfg.EmitGo, "func", gen.FuncName())
		}
	}
	return nil
}

// collect merges batch file patterns with command line patterns. The
// -verbosity flag wins over the batch file's setting.
func collect(cfg *cli.Config, logger *slog.Logger) ([]config.Pattern, string, error) {
	var jobs []config.Pattern
	verbosity := cfg.Verbosity
	if cfg.ConfigFile != "" {
		f, err := config.Load(cfg.ConfigFile, logger)
		if err != nil {
			return nil, "", err
		}
		jobs = append(jobs, f.Patterns...)
		if verbosity == "" {
			verbosity = f.Verbosity
		}
	}
	for i, src := range cfg.Patterns {
		jobs = append(jobs, config.Pattern{
			Name:    fmt.Sprintf("arg%d", i+1),
			Source:  src,
			Flags:   cfg.Flags,
			Dialect: cfg.Dialect,
		})
	}
	return jobs, verbosity, nil
}

func compile(c *compiler.Compiler, job config.Pattern) (*node.Pattern, error) {
	if job.Dialect == config.DialectRE2 {
		return c.CompileRE2(job.Source)
	}
	return c.Compile(job.Source, job.Flags)
}
