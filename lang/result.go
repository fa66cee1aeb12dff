package lang

import "log/slog"

// Result is one user's outcome from an [Engine] evaluation (§6). Exactly
// one of Value or (ErrorKind, ErrorMessage) is meaningful, selected by
// Success.
type Result struct {
	Success      bool
	Value        any
	ErrorKind    ErrorKind
	ErrorMessage string
	ElapsedMs    float64
	Expression   string
}

// LogValue implements slog.LogValuer so a batch of results can be logged
// compactly without callers hand-rolling attribute lists.
func (r Result) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Bool("success", r.Success),
		slog.Float64("elapsed_ms", r.ElapsedMs),
	}

	if r.Success {
		attrs = append(attrs, slog.Any("value", r.Value))
	} else {
		attrs = append(attrs,
			slog.String("error_kind", r.ErrorKind.String()),
			slog.String("error_message", r.ErrorMessage),
		)
	}

	return slog.GroupValue(attrs...)
}

func successResult(expr string, value any, elapsedMs float64) Result {
	return Result{Success: true, Value: value, ElapsedMs: elapsedMs, Expression: expr}
}

func failureResult(expr string, err *Error, elapsedMs float64) Result {
	return Result{
		Success:      false,
		ErrorKind:    err.Kind(),
		ErrorMessage: err.Error(),
		ElapsedMs:    elapsedMs,
		Expression:   expr,
	}
}
