// Package lang implements the core of a user-segmentation rule engine: a
// small prefix-functional expression language whose programs are validated,
// compiled, and evaluated against per-user event data to decide whether a
// user matches a segmentation predicate.
//
// # Philosophy
//
// Every expression is a call tree rooted at a single function invocation:
//
//	NAME(arg, arg, ...)
//
// where NAME is an uppercase catalog function and each arg is itself a call,
// a literal (number, boolean, single- or double-quoted string), or the
// reserved identifier null. There are no variables, no loops, and no infix
// operators — composition is the only control-flow primitive.
//
// # Pipeline
//
// Three stages, leaves-first:
//
//	Function Catalog -> Validator -> Compiler (+ Cache) -> Evaluator
//
// [Validate] runs five ordered checks (empty input, function-name casing,
// delimiter balance, undefined functions, call arity) and always returns a
// value describing the verdict — it never panics or returns a Go error for
// malformed input. [Compile] turns a validated expression into an opaque
// [Compiled] value; [Cache] memoizes that step by expression text.
// [Compiled.Execute] interprets the compiled form against an [EvalContext]
// carrying the user record being tested.
//
// # Example
//
//	cat := DefaultCatalog()
//	eng := NewEngine(cat)
//	res := eng.Evaluate(`GT(COUNT(IF("EQ(EVENT(\"event_name\"), \"purchase\")")), 2)`, user)
//	if res.Success && res.Value == true {
//		// user matches the segment
//	}
package lang
