package lang

import "log/slog"

// Compiled is the opaque, executable form produced by [Compile]. Its only
// observable operation is [Compiled.Execute].
type Compiled struct {
	root    Expr
	catalog *Catalog
	source  string
}

// Source returns the original expression text the compiled form was built
// from.
func (c *Compiled) Source() string { return c.source }

// Execute interprets the compiled expression against ctx and returns its
// value, or an [Error] if evaluation fails: a [KindRuntime]/[KindData] error,
// or the compile error of a string-literal predicate that IF, WHERE or BY
// could not compile. It never panics: dispatch-level failures are converted
// to values (§4.3, §7).
func (c *Compiled) Execute(ctx *EvalContext) (result any, err *Error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, recoverError(r)
		}
	}()

	return evalExpr(ctx, c.catalog, c.root)
}

func recoverError(r any) *Error {
	if e, ok := r.(*Error); ok {
		return e
	}

	if e, ok := r.(error); ok {
		return ErrTypeMismatch.Wrap(e)
	}

	return ErrTypeMismatch.With(slog.Any("panic", r))
}

// Names of the functions the dispatcher special-cases instead of routing
// through an ordinary catalog descriptor: short-circuit combinators and the
// operators that need unreduced (string- or expression-literal) arguments.
const (
	fnAnd   = "AND"
	fnOr    = "OR"
	fnNot   = "NOT"
	fnIf    = "IF"
	fnWhere = "WHERE"
	fnBy    = "BY"
)

// evalExpr reduces node by post-order dispatch, honoring the two
// categorical exceptions from §4.3: string-literal-as-code predicate
// arguments, and short-circuit logical combinators.
func evalExpr(ctx *EvalContext, catalog *Catalog, node Expr) (any, *Error) {
	switch n := node.(type) {
	case *NumberLit:
		return n.Value, nil

	case *StringLit:
		return n.Value, nil

	case *BoolLit:
		return n.Value, nil

	case *NullLit:
		return nil, nil

	case *CallExpr:
		return evalCall(ctx, catalog, n)

	default:
		return nil, ErrUndefinedAtRuntime
	}
}

func evalCall(ctx *EvalContext, catalog *Catalog, call *CallExpr) (any, *Error) {
	switch call.Name {
	case fnAnd:
		return evalAnd(ctx, catalog, call)
	case fnOr:
		return evalOr(ctx, catalog, call)
	case fnNot:
		return evalNot(ctx, catalog, call)
	case fnIf:
		return evalIf(ctx, call)
	case fnWhere:
		return evalWhere(ctx, catalog, call)
	case fnBy:
		return evalBy(ctx, call)
	}

	descriptor, ok := catalog.Lookup(call.Name)
	if !ok {
		// Unreachable after §4.1 validation; surfaces only on a
		// parser/compiler skew bug.
		return nil, ErrUndefinedAtRuntime.With(slog.String("name", call.Name)).AtPosition(call.NamePos)
	}

	args := make([]any, len(call.Args))

	for i, argExpr := range call.Args {
		v, err := evalExpr(ctx, catalog, argExpr)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	return descriptor.Impl(ctx, args)
}

// evalAnd evaluates arguments left-to-right, stopping at the first false
// (short-circuit observable: AND(false, DIVIDE(1,0)) never evaluates the
// divide).
func evalAnd(ctx *EvalContext, catalog *Catalog, call *CallExpr) (any, *Error) {
	for _, argExpr := range call.Args {
		v, err := evalExpr(ctx, catalog, argExpr)
		if err != nil {
			return nil, err
		}

		if !toBoolean(v) {
			return false, nil
		}
	}

	return true, nil
}

// evalOr evaluates arguments left-to-right, stopping at the first true.
func evalOr(ctx *EvalContext, catalog *Catalog, call *CallExpr) (any, *Error) {
	for _, argExpr := range call.Args {
		v, err := evalExpr(ctx, catalog, argExpr)
		if err != nil {
			return nil, err
		}

		if toBoolean(v) {
			return true, nil
		}
	}

	return false, nil
}

// evalNot negates its single argument's truthiness.
func evalNot(ctx *EvalContext, catalog *Catalog, call *CallExpr) (any, *Error) {
	if len(call.Args) != 1 {
		return nil, ErrBadArity.With(slog.String("name", "NOT")).AtPosition(call.NamePos)
	}

	v, err := evalExpr(ctx, catalog, call.Args[0])
	if err != nil {
		return nil, err
	}

	return !toBoolean(v), nil
}
