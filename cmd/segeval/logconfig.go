package main

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/segrule/log"
)

// logFormat holds the requested logger format. UnmarshalText only stores
// the text; the logger itself is built from it after parsing, in Run.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)

	return nil
}

// logLevel holds the requested logger level the same way.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)

	return nil
}

// logConfig is the embedded set of logging flags shared by every
// subcommand. Unlike the teacher's single process-wide default logger, a
// library-style CLI like this one builds one [log.Logger] value in Run and
// threads it to whichever subcommand needs it, rather than mutating shared
// package state.
type logConfig struct {
	Level   logLevel  `default:"info" enum:"${logLevelEnum}"  help:"Set log level (${enum})"`
	Format  logFormat `default:"json" enum:"${logFormatEnum}" help:"Set log format (${enum})"`
	Pretty  bool      `default:"true"                         help:"Enable colorized pretty printing" negatable:""`
	Verbose int       `                                       help:"Increment log verbosity"           short:"v" type:"counter"`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

// levelStep mirrors the named-level spacing slog itself uses.
const levelStep = 4

func (f *logConfig) applyVerbosity() log.Level {
	base := log.ParseLevel(string(f.Level))
	adjusted := base - log.Level(f.Verbose*levelStep)

	if adjusted < log.LevelTrace {
		return log.LevelTrace
	}

	return adjusted
}

// build constructs the [log.Logger] described by the parsed flags and logs
// one debug line recording the effective configuration.
func (f *logConfig) build(ctx context.Context) log.Logger {
	level := f.applyVerbosity()

	logger := log.Make(os.Stderr,
		log.WithLevel(level),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithPretty(f.Pretty),
	)

	logger.DebugContext(ctx, "logger initialized",
		slog.String("level", level.String()),
		slog.String("format", string(f.Format)),
		slog.Bool("pretty", f.Pretty),
	)

	return logger
}
