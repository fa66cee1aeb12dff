package lang

import "sort"

// Impl is a function descriptor's implementation. args has already been
// evaluated (except for the string-literal-as-code special cases handled by
// the dispatcher itself, per §4.3) and ctx carries the running evaluation's
// state.
type Impl func(ctx *EvalContext, args []any) (any, *Error)

// Descriptor describes one catalog function: its name, arity bounds,
// declared argument/return kinds, and implementation.
type Descriptor struct {
	Name       string
	MinArity   int
	MaxArity   int // MaxArityUnbounded for variadic
	ArgKinds   []Kind
	ReturnKind Kind
	Impl       Impl
}

// AcceptsArity reports whether n arguments satisfies the descriptor's arity
// bounds.
func (d Descriptor) AcceptsArity(n int) bool {
	if n < d.MinArity {
		return false
	}

	if d.MaxArity == MaxArityUnbounded {
		return true
	}

	return n <= d.MaxArity
}

// Catalog is the frozen, concurrency-safe registry of functions a validator,
// compiler, and evaluator share. Registration is only legal before [Seal];
// after sealing all reads are lock-free map lookups.
type Catalog struct {
	descriptors map[string]Descriptor
	sealed      bool
}

// NewCatalog creates an empty, unsealed [Catalog].
func NewCatalog() *Catalog {
	return &Catalog{descriptors: make(map[string]Descriptor)}
}

// Register adds a descriptor to the catalog. It panics if the catalog is
// already sealed or the name is already registered — both are programmer
// errors caught at startup, not runtime data errors.
func (c *Catalog) Register(d Descriptor) {
	if c.sealed {
		panic(ErrCatalogSealed.Error() + ": " + d.Name)
	}

	if _, exists := c.descriptors[d.Name]; exists {
		panic(ErrCatalogDuplicate.Error() + ": " + d.Name)
	}

	c.descriptors[d.Name] = d
}

// Seal freezes the catalog. After Seal, Register panics and all lookups are
// safe for concurrent use without synchronization.
func (c *Catalog) Seal() *Catalog {
	c.sealed = true

	return c
}

// Lookup returns the descriptor registered under name, if any.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	d, ok := c.descriptors[name]

	return d, ok
}

// Names returns every registered function name, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.descriptors))
	for name := range c.descriptors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of registered functions.
func (c *Catalog) Len() int { return len(c.descriptors) }
