package lang

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/segrule/log"
)

// parallelThreshold is the batch size above which [Engine.EvaluateBatch]
// fans out across goroutines instead of evaluating sequentially. Below it,
// goroutine setup costs more than it saves.
const parallelThreshold = 64

// maxWorkers bounds how many users are evaluated concurrently in one batch,
// regardless of how large the batch is.
const maxWorkers = 8

// Engine ties a function [Catalog] to a [Compiler]/[Cache] and the
// evaluator, giving callers the single entry point described in §6:
// Evaluate, EvaluateBatch, ClearCache, and CacheSize.
type Engine struct {
	compiler *Compiler
}

// NewEngine creates an [Engine] over catalog with an unbounded compile
// cache.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{compiler: NewCompiler(catalog)}
}

// NewBoundedEngine creates an [Engine] whose compile cache evicts past max
// distinct expression texts.
func NewBoundedEngine(catalog *Catalog, max int) *Engine {
	return &Engine{compiler: NewBoundedCompiler(catalog, max)}
}

// Evaluate compiles expr (served from cache on repeat calls) and executes
// it against user, returning a [Result] that never panics outward even on
// malformed input.
func (e *Engine) Evaluate(expr string, user *UserRecord) Result {
	start := time.Now()

	compiled, err := e.compiler.Compile(expr)
	if err != nil {
		return failureResult(expr, err, elapsedMs(start))
	}

	ctx := NewEvalContext(user, e.compiler)

	v, err := compiled.Execute(ctx)
	if err != nil {
		return failureResult(expr, err, elapsedMs(start))
	}

	return successResult(expr, v, elapsedMs(start))
}

// EvaluateBatch evaluates expr once per user, compiling it at most once
// regardless of batch size (§6). A parse or compile failure yields an
// identical failing [Result] for every user without attempting execution. A
// runtime failure for one user never affects the result for another —
// per-user isolation is maintained whether the batch runs sequentially or
// concurrently.
//
// Batches at or below [parallelThreshold] run sequentially; larger batches
// fan out across up to [maxWorkers] goroutines using golang.org/x/sync's
// bounded errgroup, since the evaluator performs no I/O and the only
// benefit of concurrency here is spreading CPU-bound dispatch across
// cores.
func (e *Engine) EvaluateBatch(ctx context.Context, expr string, users []*UserRecord) []Result {
	start := time.Now()

	compiled, err := e.compiler.Compile(expr)
	if err != nil {
		failure := failureResult(expr, err, elapsedMs(start))
		results := make([]Result, len(users))

		for i := range results {
			results[i] = failure
		}

		return results
	}

	results := make([]Result, len(users))

	evalOne := func(i int) {
		userStart := time.Now()
		evalCtx := NewEvalContext(users[i], e.compiler)

		v, err := compiled.Execute(evalCtx)
		if err != nil {
			results[i] = failureResult(expr, err, elapsedMs(userStart))

			return
		}

		results[i] = successResult(expr, v, elapsedMs(userStart))
	}

	if len(users) <= parallelThreshold {
		for i := range users {
			evalOne(i)
		}

		return results
	}

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(maxWorkers)

	for i := range users {
		i := i

		group.Go(func() error {
			evalOne(i)

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// SetLogger installs the logger used for the engine's compile-cache trace
// diagnostics (§9: cache hits/misses at Trace level).
func (e *Engine) SetLogger(l log.Logger) { e.compiler.SetLogger(l) }

// ClearCache empties the engine's compile cache.
func (e *Engine) ClearCache() { e.compiler.ClearCache() }

// CacheSize reports the number of distinct expression texts cached.
func (e *Engine) CacheSize() int { return e.compiler.CacheSize() }

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
