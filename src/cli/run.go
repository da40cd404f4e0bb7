package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/ogri-la/card-list-validator-go/src/codec"
	"github.com/ogri-la/card-list-validator-go/src/lint"
	"github.com/ogri-la/card-list-validator-go/src/validation"
)

// Exit statuses, every failure class is distinct and non-zero
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitIO       = 3
	ExitDecode   = 4
)

// Confirmation is printed to stdout ahead of the re-encoded catalog
const Confirmation = "JSON file loaded and validated successfully!"

// Version is reported by --version
var Version = "unreleased"

// Run executes the program with the given arguments (args[0] is the program name)
// and returns the exit status. Nothing is written to stdout unless the run succeeds.
func Run(args []string, stdout, stderr io.Writer) int {
	flags, err := ParseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n\n", ProgramName, err)
		printUsage(stderr)
		return ExitUsage
	}

	// Handle help and version
	if flags.ShowHelp {
		printUsage(stdout)
		return ExitOK
	}
	if flags.ShowVersion {
		fmt.Fprintln(stdout, Version)
		return ExitOK
	}

	logger := newLogger(stderr, flags.LogLevel)

	if flags.PrintSchema {
		return printSchema(stdout, logger, flags.Strict)
	}

	c, err := codec.New(codec.WithStrict(flags.Strict))
	if err != nil {
		logger.Error("failed to create codec", "error", err)
		return ExitInternal
	}

	// Read
	logger.Debug("reading catalog", "path", flags.InputPath)
	data, err := os.ReadFile(flags.InputPath)
	if err != nil {
		logger.Error("failed to read file", "path", flags.InputPath, "error", err)
		return ExitIO
	}
	if !utf8.Valid(data) {
		logger.Error("failed to read file", "path", flags.InputPath, "error", "file is not valid UTF-8 text")
		return ExitIO
	}

	// Decode
	logger.Debug("decoding catalog", "path", flags.InputPath, "bytes", len(data), "strict", flags.Strict)
	list, err := c.Decode(data)
	if err != nil {
		var decodeErr *codec.DecodeError
		if !errors.As(err, &decodeErr) {
			logger.Error("failed to decode catalog", "path", flags.InputPath, "error", err)
			return ExitInternal
		}
		logger.Error("failed to decode catalog", "path", flags.InputPath, "kind", decodeErr.Kind, "error", err)
		for _, issue := range decodeErr.Issues {
			logger.Debug("schema issue", "path", issue.Path, "message", issue.Message)
		}
		return ExitDecode
	}
	logger.Debug("decoded catalog", "name", list.Name, "sets", len(list.Sets))

	if flags.Lint {
		for _, finding := range lint.Check(list) {
			logger.Warn("lint", "path", finding.Path, "message", finding.Message)
		}
	}

	// Encode
	encoded, err := c.Encode(list)
	if err != nil {
		logger.Error("failed to encode catalog", "error", err)
		return ExitInternal
	}

	confirm := color.New(color.FgGreen)
	if !isTerminal(stdout) {
		confirm.DisableColor()
	}
	confirm.Fprintln(stdout, Confirmation)
	fmt.Fprintln(stdout, string(encoded))

	return ExitOK
}

// printSchema writes the JSON Schema every input is validated against
func printSchema(stdout io.Writer, logger *slog.Logger, strict bool) int {
	data, err := json.MarshalIndent(validation.Schema(strict), "", codec.DefaultIndent)
	if err != nil {
		logger.Error("failed to marshal schema", "error", err)
		return ExitInternal
	}
	fmt.Fprintln(stdout, string(data))
	return ExitOK
}

// newLogger returns a tint logger, coloured only when w is a terminal
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
