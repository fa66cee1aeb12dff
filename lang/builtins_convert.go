package lang

// registerConvertBuiltins installs TO_NUMBER, TO_STRING, and TO_BOOLEAN,
// the explicit coercion functions from §4.3.
func registerConvertBuiltins(c *Catalog) {
	c.Register(Descriptor{Name: "TO_NUMBER", MinArity: 1, MaxArity: 1, ReturnKind: KindNumber, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		return toNumber(args[0])
	}})

	c.Register(Descriptor{Name: "TO_STRING", MinArity: 1, MaxArity: 1, ReturnKind: KindString, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		return toStringValue(args[0]), nil
	}})

	c.Register(Descriptor{Name: "TO_BOOLEAN", MinArity: 1, MaxArity: 1, ReturnKind: KindBoolean, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		return toBoolean(args[0]), nil
	}})
}

// registerArithBuiltins installs ADD, SUBTRACT, MULTIPLY, and DIVIDE. Both
// operands are coerced via TO_NUMBER's rule; dividing by zero is a runtime
// error rather than +Inf/NaN, since a silently infinite segment-membership
// score would be a worse failure mode than a visible one.
func registerArithBuiltins(c *Catalog) {
	c.Register(Descriptor{Name: "ADD", MinArity: 2, MaxArity: 2, ReturnKind: KindNumber, Impl: arith(func(a, b float64) (float64, *Error) { return a + b, nil })})
	c.Register(Descriptor{Name: "SUBTRACT", MinArity: 2, MaxArity: 2, ReturnKind: KindNumber, Impl: arith(func(a, b float64) (float64, *Error) { return a - b, nil })})
	c.Register(Descriptor{Name: "MULTIPLY", MinArity: 2, MaxArity: 2, ReturnKind: KindNumber, Impl: arith(func(a, b float64) (float64, *Error) { return a * b, nil })})
	c.Register(Descriptor{Name: "DIVIDE", MinArity: 2, MaxArity: 2, ReturnKind: KindNumber, Impl: arith(func(a, b float64) (float64, *Error) {
		if b == 0 {
			return 0, ErrTypeMismatch
		}

		return a / b, nil
	})})
}

func arith(fn func(a, b float64) (float64, *Error)) Impl {
	return func(ctx *EvalContext, args []any) (any, *Error) {
		a, err := toNumber(args[0])
		if err != nil {
			return nil, err
		}

		b, err := toNumber(args[1])
		if err != nil {
			return nil, err
		}

		return fn(a, b)
	}
}
