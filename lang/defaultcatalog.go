package lang

// DefaultCatalog builds and seals the catalog described in the default
// function reference: logical combinators, comparisons, conversions,
// arithmetic, field access, iteration, and aggregation. Callers needing a
// restricted or extended function set should build their own [Catalog] with
// [NewCatalog] and the individual register* helpers instead.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	registerLogicBuiltins(c)
	registerCompareBuiltins(c)
	registerConvertBuiltins(c)
	registerArithBuiltins(c)
	registerFieldBuiltins(c)
	registerAggBuiltins(c)

	return c.Seal()
}
