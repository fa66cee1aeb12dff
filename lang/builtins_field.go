package lang

import "log/slog"

// registerFieldBuiltins installs PROFILE, EVENT, PARAM, and VISIT: the
// field-access functions that read from the current evaluation context
// rather than from their own arguments (§3, §4.3). Each resolves key with
// the snake_case-then-camelCase fallback in fieldaccess.go and returns null
// on any miss, never an error — a missing field is data, not a fault.
func registerFieldBuiltins(c *Catalog) {
	c.Register(Descriptor{Name: "PROFILE", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindString}, ReturnKind: KindAny, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		key, ok := args[0].(string)
		if !ok {
			return nil, ErrTypeMismatch.With(slog.String("name", "PROFILE"))
		}

		if ctx.User == nil {
			return nil, nil
		}

		v, _ := profileLookup(ctx.User.Profile, key)

		return v, nil
	}})

	c.Register(Descriptor{Name: "EVENT", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindString}, ReturnKind: KindAny, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		key, ok := args[0].(string)
		if !ok {
			return nil, ErrTypeMismatch.With(slog.String("name", "EVENT"))
		}

		if ctx.CurrentEvent == nil {
			return nil, nil
		}

		v, _ := eventLookup(*ctx.CurrentEvent, key)

		return v, nil
	}})

	c.Register(Descriptor{Name: "PARAM", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindString}, ReturnKind: KindAny, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		key, ok := args[0].(string)
		if !ok {
			return nil, ErrTypeMismatch.With(slog.String("name", "PARAM"))
		}

		if ctx.CurrentEvent == nil {
			return nil, nil
		}

		v, _ := paramLookup(ctx.CurrentEvent.Parameters, key)

		return v, nil
	}})

	c.Register(Descriptor{Name: "VISIT", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindString}, ReturnKind: KindAny, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		key, ok := args[0].(string)
		if !ok {
			return nil, ErrTypeMismatch.With(slog.String("name", "VISIT"))
		}

		if ctx.CurrentVisit == nil {
			return nil, nil
		}

		v, _ := visitLookup(*ctx.CurrentVisit, key)

		return v, nil
	}})

	c.Register(Descriptor{Name: "EVENTS", MinArity: 0, MaxArity: 0, ReturnKind: KindCollection, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		if ctx.User == nil {
			return nil, ErrMissingCollection.With(slog.String("collection", "events"))
		}

		return ctx.User.Events, nil
	}})

	c.Register(Descriptor{Name: "VISITS", MinArity: 0, MaxArity: 0, ReturnKind: KindCollection, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		if ctx.User == nil || ctx.User.Visits == nil {
			return nil, ErrMissingCollection.With(slog.String("collection", "visits"))
		}

		return OrderedSequence[Visit](ctx.User.Visits.Values()), nil
	}})
}
