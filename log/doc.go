// Package log wraps [log/slog] with the diagnostics this rule engine
// actually emits: compile-cache trace lines keyed by expression fingerprint,
// and CLI-level debug/error lines keyed by the expression text and source
// file being evaluated.
//
// # Basic usage
//
//	logger := log.Make(os.Stdout)
//	logger.Info("engine started", slog.String("version", "1.0.0"))
//	logger.Error("evaluation failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCallsite(true))
//
// # Adding attributes
//
// Attributes added via [Logger.With] are included in every subsequent log
// message:
//
//	logger = logger.With(slog.String("expr", text))
//	logger.Debug("evaluated expression") // includes expr=...
//
// # Context-aware logging
//
// Each level has a context-aware and a context-unaware variant:
//
//	logger.TraceContext(ctx, "cache hit", slog.Uint64("fingerprint", fp))
//	logger.Trace("cache hit") // uses DefaultContextProvider
//
// Context-unaware functions call their context-aware counterparts with
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. [LevelTrace] sits below slog's own range
// and exists specifically for the compile cache's hit/miss lines (§9),
// which fire on every evaluation and are too chatty for [LevelDebug].
//
// # Diagnostic attributes
//
// Two attribute keys receive special formatting in both output formats,
// pretty or not: "fingerprint" (a hash of an expression's text that tags
// compile-cache trace lines, rendered as hex rather than a large decimal) and "expr" (an expression's source text,
// truncated past [DefaultMaxAttrLen] runes so a long rule never floods a
// log line). See [WithMaxAttrLen].
//
// # Output formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText], each with a pretty-printing variant controlled by
// [WithPretty].
package log
