package cli

import (
	"fmt"
	"io"
	"log/slog"

	flag "github.com/spf13/pflag"

	"github.com/ogri-la/card-list-validator-go/src/config"
)

// ProgramName is used in usage messages
const ProgramName = "card-list-validator"

// Flags holds all CLI flags and configuration
type Flags struct {
	InputPath   string
	LogLevel    slog.Level
	Strict      bool
	Lint        bool
	ConfigPath  string
	ShowHelp    bool
	ShowVersion bool
	PrintSchema bool
}

// UsageError is returned when the command line cannot be used as given
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseFlags parses command line arguments, args[0] is the program name.
// Values from a --config file fill in for flags that were not given.
func ParseFlags(args []string) (*Flags, error) {
	flags := &Flags{}
	var logLevelStr string
	flagset := newFlagSet(flags, &logLevelStr)

	var programArgs []string
	if len(args) > 1 {
		programArgs = args[1:]
	}
	if err := flagset.Parse(programArgs); err != nil {
		return nil, usageErrorf("failed to parse flags: %w", err)
	}

	if flags.ShowHelp || flags.ShowVersion {
		return flags, nil
	}

	// Config file values apply only where the flag was not given
	if flags.ConfigPath != "" {
		cfg, err := config.Load(flags.ConfigPath)
		if err != nil {
			return nil, &UsageError{Err: err}
		}
		if !flagset.Changed("strict") {
			flags.Strict = cfg.Strict
		}
		if !flagset.Changed("lint") {
			flags.Lint = cfg.Lint
		}
		if !flagset.Changed("log-level") && cfg.LogLevel != "" {
			logLevelStr = cfg.LogLevel
		}
	}

	// Parse log level
	logLevel, exists := logLevelMap[logLevelStr]
	if !exists {
		return nil, usageErrorf("unknown log level: %s", logLevelStr)
	}
	flags.LogLevel = logLevel

	if flags.PrintSchema {
		return flags, nil
	}

	// Exactly one input file
	positional := flagset.Args()
	if len(positional) != 1 {
		return nil, usageErrorf("expected exactly one input file, got %d arguments", len(positional))
	}
	flags.InputPath = positional[0]

	return flags, nil
}

// newFlagSet declares every flag, binding them to flags
func newFlagSet(flags *Flags, logLevelStr *string) *flag.FlagSet {
	flagset := flag.NewFlagSet(ProgramName, flag.ContinueOnError)
	flagset.SetOutput(io.Discard)
	flagset.BoolVarP(&flags.ShowHelp, "help", "h", false, "print this help and exit")
	flagset.BoolVarP(&flags.ShowVersion, "version", "V", false, "print program version and exit")
	flagset.BoolVar(&flags.PrintSchema, "print-schema", false, "print the JSON Schema of a card list and exit")
	flagset.BoolVar(&flags.Strict, "strict", false, "reject keys the card list schema does not define")
	flagset.BoolVar(&flags.Lint, "lint", false, "log warnings for blank names, undefined attributes and duplicate cards")
	flagset.StringVar(&flags.ConfigPath, "config", "", "read option defaults from a .toml or .yaml file")
	flagset.StringVar(logLevelStr, "log-level", "info", "verbosity level. one of: debug, info, warn, error")
	return flagset
}

// printUsage prints usage information
func printUsage(w io.Writer) {
	var logLevelStr string
	flagset := newFlagSet(&Flags{}, &logLevelStr)

	fmt.Fprintf(w, "usage: %s [options] <path-to-json-file>\n", ProgramName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validates a card list JSON file and prints it back as canonical, indented JSON.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, flagset.FlagUsages())
}
