package lang

import (
	"log/slog"
	"sort"
	"time"
)

// evalIf implements IF(predicate): filters the user's events against a
// predicate supplied as a string-literal expression, honoring whatever
// timeRange is installed in the calling context. The predicate text is
// never evaluated as a normal argument — it is compiled once and executed
// once per candidate event against a derived child context (I4).
func evalIf(ctx *EvalContext, call *CallExpr) (any, *Error) {
	if len(call.Args) != 1 {
		return nil, ErrBadArity.With(slog.String("name", fnIf)).AtPosition(call.NamePos)
	}

	predText, err := literalPredicateText(call.Args[0])
	if err != nil {
		return nil, err
	}

	if ctx.User == nil {
		return nil, ErrMissingCollection.With(slog.String("collection", "events"))
	}

	return filterEvents(ctx, ctx.User.Events, predText)
}

// evalWhere implements WHERE(collection, predicate): the first argument is
// an ordinary evaluated expression yielding a collection; the second is a
// string-literal predicate, handled the same way as IF's.
func evalWhere(ctx *EvalContext, catalog *Catalog, call *CallExpr) (any, *Error) {
	if len(call.Args) != 2 {
		return nil, ErrBadArity.With(slog.String("name", fnWhere)).AtPosition(call.NamePos)
	}

	collection, err := evalExpr(ctx, catalog, call.Args[0])
	if err != nil {
		return nil, err
	}

	predText, err := literalPredicateText(call.Args[1])
	if err != nil {
		return nil, err
	}

	switch coll := collection.(type) {
	case OrderedSequence[Event]:
		return filterEvents(ctx, coll, predText)
	case OrderedSequence[Visit]:
		return filterVisits(ctx, coll, predText)
	default:
		return nil, ErrTypeMismatch.With(slog.String("name", fnWhere))
	}
}

// evalBy implements BY(expr): re-evaluates expr once per event in the
// user's event collection, against a child context scoped to that event,
// collecting the results in event order. Unlike IF/WHERE it is a map, not a
// filter: every event inside the active time window whose evaluation
// succeeds contributes a value, and a null result is kept as a placeholder.
// Events outside the window, and events whose evaluation fails, are skipped.
func evalBy(ctx *EvalContext, call *CallExpr) (any, *Error) {
	if len(call.Args) != 1 {
		return nil, ErrBadArity.With(slog.String("name", fnBy)).AtPosition(call.NamePos)
	}

	exprText, err := literalPredicateText(call.Args[0])
	if err != nil {
		return nil, err
	}

	if ctx.User == nil {
		return nil, ErrMissingCollection.With(slog.String("collection", "events"))
	}

	compiled, cerr := ctx.compiler.Compile(exprText)
	if cerr != nil {
		return nil, cerr
	}

	out := make([]any, 0, len(ctx.User.Events))

	for i := range ctx.User.Events {
		e := ctx.User.Events[i]

		if !inTimeRange(ctx.effectiveTimeRange(), e.Timestamp) {
			continue
		}

		child := ctx.withEvent(&e)

		v, err := compiled.Execute(child)
		if err != nil {
			continue
		}

		out = append(out, v)
	}

	return out, nil
}

// literalPredicateText extracts the raw string contents of a string-literal
// argument node without evaluating it through normal dispatch, per the
// string-literal-as-code exception (§4.3).
func literalPredicateText(expr Expr) (string, *Error) {
	lit, ok := expr.(*StringLit)
	if !ok {
		return "", ErrTypeMismatch.With(
			slog.String("reason", "expected a string-literal expression argument"),
		).AtPosition(expr.Position())
	}

	return lit.Value, nil
}

func filterEvents(ctx *EvalContext, events OrderedSequence[Event], predText string) (any, *Error) {
	compiled, cerr := ctx.compiler.Compile(predText)
	if cerr != nil {
		return nil, cerr
	}

	tr := ctx.effectiveTimeRange()

	out := make(OrderedSequence[Event], 0, len(events))

	for i := range events {
		e := events[i]

		if !inTimeRange(tr, e.Timestamp) {
			continue
		}

		child := ctx.withEvent(&e)

		v, err := compiled.Execute(child)
		if err != nil {
			// Per-element predicate failures are dropped, not propagated
			// (§4.3); a compile-time failure was already returned above.
			continue
		}

		if toBoolean(v) {
			out = append(out, e)
		}
	}

	return out, nil
}

func filterVisits(ctx *EvalContext, visits OrderedSequence[Visit], predText string) (any, *Error) {
	compiled, cerr := ctx.compiler.Compile(predText)
	if cerr != nil {
		return nil, cerr
	}

	tr := ctx.effectiveTimeRange()

	out := make(OrderedSequence[Visit], 0, len(visits))

	for i := range visits {
		v := visits[i]

		if !inTimeRange(tr, v.Timestamp) {
			continue
		}

		child := ctx.withVisit(&v)

		val, err := compiled.Execute(child)
		if err != nil {
			continue
		}

		if toBoolean(val) {
			out = append(out, v)
		}
	}

	return out, nil
}

// inTimeRange reports whether the [From, To) window in tr admits a record
// whose timestamp is ts. A record with an unparseable or empty timestamp is
// never excluded by a time bound it can't be checked against.
func inTimeRange(tr TimeRange, ts string) bool {
	if !tr.HasFrom && !tr.HasTo {
		return true
	}

	t, ok := parseTimestamp(ts)
	if !ok {
		return true
	}

	if tr.HasFrom && t.Before(tr.From) {
		return false
	}

	if tr.HasTo && !t.Before(tr.To) {
		return false
	}

	return true
}

// builtinFrom implements FROM(value): installs a lower time bound into the
// calling context so that an enclosing iteration operator evaluated
// afterward applies it (§4.3). It mutates ctx in place — the one exception
// to the evaluator otherwise never mutating its input — because that is
// precisely the mechanism by which a bound "installs into the calling
// context" rather than being returned as an ordinary value.
func builtinFrom(ctx *EvalContext, args []any) (any, *Error) {
	t, err := argTimestamp(args, "FROM")
	if err != nil {
		return nil, err
	}

	tr := ctx.effectiveTimeRange()
	tr.From, tr.HasFrom = t, true
	ctx.TimeRange = &tr

	return true, nil
}

// builtinTo implements TO(value): installs an upper time bound, exclusive.
func builtinTo(ctx *EvalContext, args []any) (any, *Error) {
	t, err := argTimestamp(args, "TO")
	if err != nil {
		return nil, err
	}

	tr := ctx.effectiveTimeRange()
	tr.To, tr.HasTo = t, true
	ctx.TimeRange = &tr

	return true, nil
}

func argTimestamp(args []any, name string) (time.Time, *Error) {
	if len(args) != 1 {
		return time.Time{}, ErrBadArity.With(slog.String("name", name))
	}

	s, ok := args[0].(string)
	if !ok {
		return time.Time{}, ErrBadTimestamp.With(slog.String("name", name))
	}

	t, ok := parseTimestamp(s)
	if !ok {
		return time.Time{}, ErrBadTimestamp.With(slog.String("name", name), slog.String("value", s))
	}

	return t, nil
}

// fieldValue resolves key against a single collection element, dispatching
// on its concrete type.
func fieldValue(el any, key string) (any, bool) {
	switch v := el.(type) {
	case Event:
		return eventLookup(v, key)
	case Visit:
		return visitLookup(v, key)
	default:
		return nil, false
	}
}

// builtinTop implements TOP(collection, fieldName[, n]): tallies the
// frequency of fieldName's value across collection, breaking ties by first
// occurrence (the order [OrderedSequence] exists to make well-defined, per
// the note on OrderedMap/OrderedSequence). With n omitted it returns the
// single most frequent value; otherwise it returns up to n values.
func builtinTop(ctx *EvalContext, args []any) (any, *Error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, ErrBadArity.With(slog.String("name", "TOP"))
	}

	key, ok := args[1].(string)
	if !ok {
		return nil, ErrTypeMismatch.With(slog.String("name", "TOP"))
	}

	n := 1

	if len(args) == 3 {
		f, err := toNumber(args[2])
		if err != nil {
			return nil, err
		}

		n = int(f)
	}

	elems, err := asElementSlice(args[0])
	if err != nil {
		return nil, err
	}

	type tally struct {
		value any
		count int
		first int
	}

	seen := make(map[any]*tally)
	order := make([]any, 0, len(elems))

	for i, el := range elems {
		v, ok := fieldValue(el, key)
		if !ok {
			continue
		}

		k := normalizeTallyKey(v)

		t, exists := seen[k]
		if !exists {
			t = &tally{value: v, first: i}
			seen[k] = t
			order = append(order, k)
		}

		t.count++
	}

	ranked := make([]*tally, 0, len(order))
	for _, k := range order {
		ranked = append(ranked, seen[k])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}

		return ranked[i].first < ranked[j].first
	})

	if n > len(ranked) {
		n = len(ranked)
	}

	if len(ranked) == 0 {
		return nil, nil
	}

	if len(args) == 2 {
		return ranked[0].value, nil
	}

	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[i].value
	}

	return out, nil
}

// normalizeTallyKey collapses numerically-equal values onto the same tally
// bucket regardless of Go's float64-vs-int representation.
func normalizeTallyKey(v any) any {
	if f, ok := asNumber(v); ok {
		return f
	}

	return v
}

// asElementSlice adapts the two collection representations BY/IF/WHERE/TOP
// pass around into a uniform []any of elements.
func asElementSlice(v any) ([]any, *Error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case OrderedSequence[Event]:
		out := make([]any, len(c))
		for i, e := range c {
			out[i] = e
		}

		return out, nil
	case OrderedSequence[Visit]:
		out := make([]any, len(c))
		for i, vv := range c {
			out[i] = vv
		}

		return out, nil
	case []any:
		return c, nil
	default:
		return nil, ErrTypeMismatch.With(slog.String("reason", "expected a collection"))
	}
}
