package lang

import "log/slog"

// registerCompareBuiltins installs EQ/NEQ/GT/GTE/LT/LTE. Equality uses the
// cross-type rule from §4.3 ([valuesEqual]); ordering coerces both sides to
// numbers, per §4.3's numeric-compare rule.
func registerCompareBuiltins(c *Catalog) {
	c.Register(Descriptor{Name: "EQ", MinArity: 2, MaxArity: 2, ReturnKind: KindBoolean, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		return valuesEqual(args[0], args[1]), nil
	}})

	c.Register(Descriptor{Name: "NEQ", MinArity: 2, MaxArity: 2, ReturnKind: KindBoolean, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		return !valuesEqual(args[0], args[1]), nil
	}})

	c.Register(Descriptor{Name: "GT", MinArity: 2, MaxArity: 2, ReturnKind: KindBoolean, Impl: numericCompare("GT", func(a, b float64) bool { return a > b })})
	c.Register(Descriptor{Name: "GTE", MinArity: 2, MaxArity: 2, ReturnKind: KindBoolean, Impl: numericCompare("GTE", func(a, b float64) bool { return a >= b })})
	c.Register(Descriptor{Name: "LT", MinArity: 2, MaxArity: 2, ReturnKind: KindBoolean, Impl: numericCompare("LT", func(a, b float64) bool { return a < b })})
	c.Register(Descriptor{Name: "LTE", MinArity: 2, MaxArity: 2, ReturnKind: KindBoolean, Impl: numericCompare("LTE", func(a, b float64) bool { return a <= b })})
}

func numericCompare(name string, cmp func(a, b float64) bool) Impl {
	return func(ctx *EvalContext, args []any) (any, *Error) {
		a, err := toNumber(args[0])
		if err != nil {
			return nil, err.With(slog.String("name", name))
		}

		b, err := toNumber(args[1])
		if err != nil {
			return nil, err.With(slog.String("name", name))
		}

		if isNaNCompare(a, b) {
			return false, nil
		}

		return cmp(a, b), nil
	}
}

func isNaNCompare(a, b float64) bool {
	return a != a || b != b
}
