package lang

// registerLogicBuiltins installs descriptors for the functions the
// dispatcher special-cases in evaluator.go/iteration.go (AND, OR, NOT, IF,
// WHERE, BY). Their Impl is never invoked — dispatch intercepts the call
// before a catalog lookup happens — but a descriptor still has to exist so
// [Validate]'s undefined-function and arity checks see them as ordinary
// functions. FROM, TO and TOP are dispatched through the catalog like any
// other function and carry real implementations.
func registerLogicBuiltins(c *Catalog) {
	unreachable := func(ctx *EvalContext, args []any) (any, *Error) {
		panic("lang: special-cased function dispatched through catalog Impl")
	}

	c.Register(Descriptor{Name: "AND", MinArity: 2, MaxArity: MaxArityUnbounded, ReturnKind: KindBoolean, Impl: unreachable})
	c.Register(Descriptor{Name: "OR", MinArity: 2, MaxArity: MaxArityUnbounded, ReturnKind: KindBoolean, Impl: unreachable})
	c.Register(Descriptor{Name: "NOT", MinArity: 1, MaxArity: 1, ReturnKind: KindBoolean, Impl: unreachable})
	c.Register(Descriptor{Name: "IF", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindString}, ReturnKind: KindCollection, Impl: unreachable})
	c.Register(Descriptor{Name: "WHERE", MinArity: 2, MaxArity: 2, ArgKinds: []Kind{KindCollection, KindString}, ReturnKind: KindCollection, Impl: unreachable})
	c.Register(Descriptor{Name: "BY", MinArity: 1, MaxArity: 1, ArgKinds: []Kind{KindString}, ReturnKind: KindCollection, Impl: unreachable})
	c.Register(Descriptor{Name: "FROM", MinArity: 1, MaxArity: 1, ReturnKind: KindBoolean, Impl: builtinFrom})
	c.Register(Descriptor{Name: "TO", MinArity: 1, MaxArity: 1, ReturnKind: KindBoolean, Impl: builtinTo})
	c.Register(Descriptor{Name: "TOP", MinArity: 2, MaxArity: 3, ReturnKind: KindAny, Impl: builtinTop})
}
