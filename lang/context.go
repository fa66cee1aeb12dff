package lang

// EvalContext is the per-evaluation environment threaded through dispatch
// (§3). It is owned exclusively by the evaluation that created it; iteration
// operators derive children by shallow copy and never mutate a parent (I4).
type EvalContext struct {
	User         *UserRecord
	CurrentEvent *Event
	CurrentVisit *Visit
	TimeRange    *TimeRange

	// compiler lets iteration operators recompile a predicate passed as a
	// string literal (§4.3). It is an explicit field rather than a value
	// stashed under a reserved context key, per the design note in §9.
	compiler *Compiler
}

// NewEvalContext creates the top-level context for one evaluation.
func NewEvalContext(user *UserRecord, compiler *Compiler) *EvalContext {
	return &EvalContext{User: user, compiler: compiler}
}

// withEvent returns a shallow copy of ctx with CurrentEvent set to e. The
// receiver is never mutated (I4).
func (ctx *EvalContext) withEvent(e *Event) *EvalContext {
	child := *ctx
	child.CurrentEvent = e

	return &child
}

// withVisit returns a shallow copy of ctx with CurrentVisit set to v.
func (ctx *EvalContext) withVisit(v *Visit) *EvalContext {
	child := *ctx
	child.CurrentVisit = v

	return &child
}

// withTimeRange returns a shallow copy of ctx with an updated time bound.
// from/to are applied independently: passing only one leaves the other as
// it was in the parent, matching FROM/TO's per-bound installation semantics
// (§4.3).
func (ctx *EvalContext) withTimeRange(tr TimeRange) *EvalContext {
	merged := ctx.effectiveTimeRange()
	if tr.HasFrom {
		merged.From, merged.HasFrom = tr.From, true
	}

	if tr.HasTo {
		merged.To, merged.HasTo = tr.To, true
	}

	child := *ctx
	child.TimeRange = &merged

	return &child
}

// effectiveTimeRange returns the context's time window, or the zero value
// (HasFrom/HasTo both false) if none is installed.
func (ctx *EvalContext) effectiveTimeRange() TimeRange {
	if ctx.TimeRange == nil {
		return TimeRange{}
	}

	return *ctx.TimeRange
}
