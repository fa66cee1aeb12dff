package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrorKind classifies a failure reported to the outside world through a
// [Result]. It is the taxonomy from the engine's external contract, distinct
// from the finer-grained [SyntaxReason] used internally by the validator.
type ErrorKind int

const (
	// KindNone indicates success; no error occurred.
	KindNone ErrorKind = iota

	// KindSyntax reports a parser failure: bad casing, unbalanced
	// delimiters, an undefined function, or a call with the wrong arity.
	KindSyntax

	// KindValidation is reserved for semantic checks beyond §4.1's
	// structural validation. Unused by the core catalog today.
	KindValidation

	// KindCompilation reports that the compiler backend rejected an
	// expression that the validator had already accepted — a
	// parser/compiler skew bug.
	KindCompilation

	// KindRuntime reports a type mismatch, a failed timestamp parse, an
	// illegal dot-notation traversal, or a conversion failure encountered
	// while executing a compiled expression.
	KindRuntime

	// KindData reports a malformed user record, such as a missing events
	// collection required by an iteration operator.
	KindData
)

// String returns the wire-level name of the error kind, e.g. "RUNTIME_ERROR".
func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "SYNTAX_ERROR"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindCompilation:
		return "COMPILATION_ERROR"
	case KindRuntime:
		return "RUNTIME_ERROR"
	case KindData:
		return "DATA_ERROR"
	default:
		return "NONE"
	}
}

// Error is the engine's error value. It carries a message, an optional
// wrapped cause, a classification, and structured logging attributes, and
// implements both error and slog.LogValuer so callers can log it directly.
type Error struct {
	msg   string
	kind  ErrorKind
	err   error
	attrs []slog.Attr
	pos   int
	hasPos bool
}

// NewError creates a new [Error] classified as kind with the given message.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// WrapError wraps a standard error into an [Error]. If err is already an
// *Error, it is returned unchanged.
func WrapError(kind ErrorKind, err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{kind: kind, err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	if len(part) == 0 {
		return e.kind.String()
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the error's classification.
func (e *Error) Kind() ErrorKind { return e.kind }

// Position returns the 0-based code-unit position associated with the
// error, if any.
func (e *Error) Position() (int, bool) { return e.pos, e.hasPos }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)
	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.hasPos {
		attrs = append(attrs, slog.Int("position", e.pos))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a new [Error] with the same kind and attributes, wrapping err
// as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:    e.msg,
		kind:   e.kind,
		err:    err,
		attrs:  e.attrs,
		pos:    e.pos,
		hasPos: e.hasPos,
	}
}

// With returns a new [Error] with the given structured attributes appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:    e.msg,
		kind:   e.kind,
		err:    e.err,
		attrs:  newAttrs,
		pos:    e.pos,
		hasPos: e.hasPos,
	}
}

// AtPosition returns a new [Error] carrying the given 0-based code-unit
// position.
func (e *Error) AtPosition(pos int) *Error {
	return &Error{
		msg:    e.msg,
		kind:   e.kind,
		err:    e.err,
		attrs:  e.attrs,
		pos:    pos,
		hasPos: true,
	}
}

// Sentinel errors used throughout the engine. Each is a template: call
// [Error.With], [Error.Wrap], or [Error.AtPosition] to specialize it for a
// particular failure site without mutating the shared value.
var (
	ErrEmptyExpression    = NewError(KindSyntax, "expression is empty")
	ErrBadCase            = NewError(KindSyntax, "function name must be uppercase")
	ErrUnbalanced         = NewError(KindSyntax, "unbalanced delimiters")
	ErrUndefinedFunction  = NewError(KindSyntax, "undefined function")
	ErrBadArity           = NewError(KindSyntax, "wrong number of arguments")
	ErrInternal           = NewError(KindSyntax, "internal parser error")
	ErrCompilation        = NewError(KindCompilation, "compilation failed")
	ErrTypeMismatch       = NewError(KindRuntime, "type mismatch")
	ErrUndefinedAtRuntime = NewError(KindRuntime, "undefined function at runtime")
	ErrNilDeref           = NewError(KindRuntime, "required operand is null")
	ErrBadTimestamp       = NewError(KindRuntime, "unparseable timestamp")
	ErrMissingCollection  = NewError(KindData, "required collection is absent from the user record")
	ErrCatalogSealed      = NewError(KindInternalCatalog, "catalog is sealed")
	ErrCatalogDuplicate   = NewError(KindInternalCatalog, "duplicate function name")
)

// KindInternalCatalog classifies catalog-construction programmer errors.
// These never reach a [Result]; they panic at startup, the same way a
// duplicate route registration or a malformed regexp would.
const KindInternalCatalog ErrorKind = -1
