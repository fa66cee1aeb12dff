package main

import (
	"errors"
	"log/slog"
	"strings"
)

// cmdErrorKind classifies the handful of ways segeval's subcommands can
// fail, so a wrapping caller (or a log line) can tell "the user record
// didn't parse" apart from "the expression didn't compile" without
// string-matching the message.
type cmdErrorKind int

const (
	kindReadUser cmdErrorKind = iota
	kindFormatExpr
	kindMarshalJSON
	kindMarshalYAML
	kindEvaluate
)

func (k cmdErrorKind) String() string {
	switch k {
	case kindReadUser:
		return "read_user"
	case kindFormatExpr:
		return "format_expr"
	case kindMarshalJSON:
		return "marshal_json"
	case kindMarshalYAML:
		return "marshal_yaml"
	case kindEvaluate:
		return "evaluate"
	default:
		return "unknown"
	}
}

// cmdError is a kong-compatible command error that carries enough
// structure for [logConfig.build]'s logger to report it as attributes
// rather than a flattened string.
type cmdError struct {
	kind  cmdErrorKind
	msg   string
	err   error
	attrs []slog.Attr
}

func newCmdError(kind cmdErrorKind, msg string) *cmdError {
	return &cmdError{kind: kind, msg: msg}
}

func (e *cmdError) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *cmdError) Unwrap() error { return e.err }

func (e *cmdError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)
	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *cmdError) Wrap(err error) *cmdError {
	return &cmdError{kind: e.kind, msg: e.msg, err: err, attrs: e.attrs}
}

func (e *cmdError) With(attrs ...slog.Attr) *cmdError {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &cmdError{kind: e.kind, msg: e.msg, err: e.err, attrs: newAttrs}
}

// isKind reports whether err (or anything it wraps) is a *cmdError of the
// given kind.
func isKind(err error, kind cmdErrorKind) bool {
	var ce *cmdError

	return errors.As(err, &ce) && ce.kind == kind
}

var (
	errReadUser    = newCmdError(kindReadUser, "read user record")
	errFormatExpr  = newCmdError(kindFormatExpr, "format expression")
	errMarshalJSON = newCmdError(kindMarshalJSON, "marshal JSON")
	errMarshalYAML = newCmdError(kindMarshalYAML, "marshal YAML")
)
