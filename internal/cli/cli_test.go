package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/patterndissect/internal/config"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

func TestArrayFlagsString(t *testing.T) {
	tests := []struct {
		name     string
		flags    arrayFlags
		expected string
	}{
		{
			name:     "empty",
			flags:    arrayFlags{},
			expected: "",
		},
		{
			name:     "single",
			flags:    arrayFlags{"^abc$"},
			expected: "^abc$",
		},
		{
			name:     "multiple",
			flags:    arrayFlags{"^abc$", "[a-z]+", "(?i)x"},
			expected: "^abc$, [a-z]+, (?i)x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.flags.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestArrayFlagsSet(t *testing.T) {
	var flags arrayFlags

	// Test adding multiple values
	if err := flags.Set("^abc$"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 1 || flags[0] != "^abc$" {
		t.Errorf("Set() = %v, want [\"^abc$\"]", flags)
	}

	if err := flags.Set("[a-z]+"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 2 || flags[1] != "[a-z]+" {
		t.Errorf("Set() = %v, want [\"^abc$\", \"[a-z]+\"]", flags)
	}
}

func TestParse(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{"-p", "a+", "-verbosity", "terse", "-flags", "multiline,case-insensitive", "b*"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	require.Equal(t, []string{"a+", "b*"}, cfg.Patterns)
	require.Equal(t, "terse", cfg.Verbosity)
	require.Equal(t, node.Multiline|node.CaseInsensitive, cfg.Flags)
	require.Equal(t, config.DialectJava, cfg.Dialect)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestParseShouldExit(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {}} {
		var out bytes.Buffer
		cfg, exit, err := Parse(args, &out)
		require.NoError(t, err)
		require.True(t, exit)
		require.Nil(t, cfg)
		require.Contains(t, out.String(), "Usage:")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined"},
		{"verbosity", []string{"-verbosity", "loud", "a"}, "invalid verbosity"},
		{"compile flags", []string{"-flags", "sticky", "a"}, "invalid flags"},
		{"dialect", []string{"-dialect", "pcre", "a"}, "unknown dialect"},
		{"re2 with flags", []string{"-dialect", "re2", "-flags", "multiline", "a"}, "-dialect re2"},
		{"emit two patterns", []string{"-emit-go", "x.go", "a", "b"}, "exactly one pattern"},
		{"emit bad name", []string{"-emit-go", "x.go", "-name", "9x", "a"}, "invalid -emit-go"},
		{"log format", []string{"-log-format", "xml", "a"}, "invalid log-format"},
		{"log level", []string{"-log-level", "trace", "a"}, "invalid log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tt.args, &out)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
			require.Contains(t, exitErr.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("debug", "json", &buf)
	logger.Debug("hello", "k", "v")
	require.True(t, strings.HasPrefix(buf.String(), "{"))
	require.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	logger = NewLogger("warn", "text", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown")
}
