package log

import (
	"context"
	"log/slog"
	"os"
)

func Example_basic() {
	logger := Make(os.Stdout)
	logger.Info("engine started", slog.String("version", "1.0.0"))
}

func Example_configuration() {
	logger := Make(os.Stdout,
		WithLevel(LevelDebug),
		WithTimeLayout("RFC3339Nano"),
		WithCallsite(true))

	logger.Debug("debug message with callsite info")
}

func Example_levels() {
	logger := Make(os.Stdout, WithLevel(LevelTrace))

	logger.Fingerprint(0xdeadbeef).Trace("compiling expression")
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message", slog.String("error", "something failed"))
}

func Example_textFormat() {
	logger := Make(os.Stdout, WithFormat(FormatText))
	logger.Info("text format message", slog.String("user", "alice"))
}

func Example_fingerprint() {
	// Fingerprint tags a log line with an expression-text hash, rendered as
	// hex rather than a raw uint64.
	logger := Make(os.Stdout, WithLevel(LevelTrace))
	logger.Fingerprint(255).Trace("cache hit")
}

func Example_expr() {
	// Expr tags a log line with the expression text under evaluation,
	// truncated past WithMaxAttrLen so a pathological expression can't
	// flood a log line.
	logger := Make(os.Stdout, WithMaxAttrLen(40))
	logger.Expr(`AND(EQ(PROFILE("plan"), "pro"), GT(COUNT(EVENTS()), 10))`).Info("evaluated expression")
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := Make(os.Stdout)

	logger.InfoContext(ctx, "processing evaluation request")
	logger.DebugContext(ctx, "request details", slog.String("method", "POST"))
}
