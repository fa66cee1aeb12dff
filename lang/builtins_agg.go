package lang

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// registerAggBuiltins installs the collection and aggregation functions:
// COUNT, SUM, AVG, MIN, MAX, FIRST, LAST, DISTINCT, LENGTH, CONTAINS, and
// IN. All but LENGTH/CONTAINS/IN take a single collection argument —
// typically the result of IF/WHERE/BY/TOP/EVENTS/VISITS.
func registerAggBuiltins(c *Catalog) {
	c.Register(Descriptor{Name: "COUNT", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindCollection}, ReturnKind: KindNumber, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		elems, err := asElementSlice(args[0])
		if err != nil {
			return nil, err
		}

		return float64(len(elems)), nil
	}})

	c.Register(Descriptor{Name: "SUM", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindCollection}, ReturnKind: KindNumber, Impl: reduceNumeric("SUM", 0, func(acc, v float64) float64 { return acc + v })})

	c.Register(Descriptor{Name: "AVG", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindCollection}, ReturnKind: KindNumber, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		elems, err := asElementSlice(args[0])
		if err != nil {
			return nil, err
		}

		if len(elems) == 0 {
			return nil, nil
		}

		var total float64

		for _, el := range elems {
			n, err := toNumber(el)
			if err != nil {
				return nil, err.With(slog.String("name", "AVG"))
			}

			total += n
		}

		return total / float64(len(elems)), nil
	}})

	c.Register(Descriptor{Name: "MIN", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindCollection}, ReturnKind: KindNumber, Impl: extremum("MIN", func(a, b float64) bool { return a < b })})
	c.Register(Descriptor{Name: "MAX", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindCollection}, ReturnKind: KindNumber, Impl: extremum("MAX", func(a, b float64) bool { return a > b })})

	c.Register(Descriptor{Name: "FIRST", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindCollection}, ReturnKind: KindAny, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		elems, err := asElementSlice(args[0])
		if err != nil {
			return nil, err
		}

		if len(elems) == 0 {
			return nil, nil
		}

		return elems[0], nil
	}})

	c.Register(Descriptor{Name: "LAST", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindCollection}, ReturnKind: KindAny, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		elems, err := asElementSlice(args[0])
		if err != nil {
			return nil, err
		}

		if len(elems) == 0 {
			return nil, nil
		}

		return elems[len(elems)-1], nil
	}})

	c.Register(Descriptor{Name: "DISTINCT", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindCollection}, ReturnKind: KindCollection, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		elems, err := asElementSlice(args[0])
		if err != nil {
			return nil, err
		}

		seen := make(map[any]bool, len(elems))
		out := make([]any, 0, len(elems))

		for _, el := range elems {
			k := normalizeTallyKey(el)
			if seen[k] {
				continue
			}

			seen[k] = true
			out = append(out, el)
		}

		return out, nil
	}})

	c.Register(Descriptor{Name: "LENGTH", MinArity: 1, MaxArity: 1, ReturnKind: KindNumber, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		switch v := args[0].(type) {
		case nil:
			return float64(0), nil
		case string:
			return float64(utf8.RuneCountInString(v)), nil
		default:
			elems, err := asElementSlice(v)
			if err != nil {
				return nil, ErrTypeMismatch.With(slog.String("name", "LENGTH"))
			}

			return float64(len(elems)), nil
		}
	}})

	c.Register(Descriptor{Name: "CONTAINS", MinArity: 2, MaxArity: 2, ReturnKind: KindBoolean, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		if s, ok := args[0].(string); ok {
			sub, ok := args[1].(string)
			if !ok {
				return nil, ErrTypeMismatch.With(slog.String("name", "CONTAINS"))
			}

			return strings.Contains(s, sub), nil
		}

		elems, err := asElementSlice(args[0])
		if err != nil {
			return nil, err
		}

		return membership(elems, args[1]), nil
	}})

	c.Register(Descriptor{Name: "IN", MinArity: 2, MaxArity: 2, ReturnKind: KindBoolean, Impl: func(ctx *EvalContext, args []any) (any, *Error) {
		elems, err := asElementSlice(args[1])
		if err != nil {
			return nil, err
		}

		return membership(elems, args[0]), nil
	}})
}

func reduceNumeric(name string, zero float64, step func(acc, v float64) float64) Impl {
	return func(ctx *EvalContext, args []any) (any, *Error) {
		elems, err := asElementSlice(args[0])
		if err != nil {
			return nil, err
		}

		acc := zero

		for _, el := range elems {
			n, err := toNumber(el)
			if err != nil {
				return nil, err.With(slog.String("name", name))
			}

			acc = step(acc, n)
		}

		return acc, nil
	}
}

func extremum(name string, better func(a, b float64) bool) Impl {
	return func(ctx *EvalContext, args []any) (any, *Error) {
		elems, err := asElementSlice(args[0])
		if err != nil {
			return nil, err
		}

		if len(elems) == 0 {
			return nil, nil
		}

		best, err := toNumber(elems[0])
		if err != nil {
			return nil, err.With(slog.String("name", name))
		}

		for _, el := range elems[1:] {
			n, err := toNumber(el)
			if err != nil {
				return nil, err.With(slog.String("name", name))
			}

			if better(n, best) {
				best = n
			}
		}

		return best, nil
	}
}

func membership(elems []any, target any) bool {
	for _, el := range elems {
		if valuesEqual(el, target) {
			return true
		}
	}

	return false
}
