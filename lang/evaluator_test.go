package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execText(t *testing.T, cat *Catalog, ctx *EvalContext, text string) any {
	t.Helper()

	compiled, err := Compile(cat, text)
	require.Nil(t, err)

	v, eerr := compiled.Execute(ctx)
	require.Nil(t, eerr)

	return v
}

func TestEvaluatorLiterals(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(&UserRecord{}, NewCompiler(cat))

	assert.Equal(t, 3.0, execText(t, cat, ctx, "3"))
	assert.Equal(t, "hi", execText(t, cat, ctx, `"hi"`))
	assert.Equal(t, true, execText(t, cat, ctx, "true"))
	assert.Nil(t, execText(t, cat, ctx, "null"))
}

func TestEvaluatorComparisons(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(&UserRecord{}, NewCompiler(cat))

	assert.Equal(t, true, execText(t, cat, ctx, "EQ(1, 1)"))
	assert.Equal(t, false, execText(t, cat, ctx, "EQ(1, 2)"))
	assert.Equal(t, true, execText(t, cat, ctx, `GT(3, 2)`))
	assert.Equal(t, true, execText(t, cat, ctx, `EQ(null, null)`))
	assert.Equal(t, false, execText(t, cat, ctx, `EQ(null, 1)`))
}

func TestEvaluatorAndShortCircuits(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(&UserRecord{}, NewCompiler(cat))

	// DIVIDE(1, 0) would error if evaluated; AND must never reach it once
	// the first argument is false.
	v := execText(t, cat, ctx, `AND(EQ(1, 2), EQ(DIVIDE(1, 0), 1))`)
	assert.Equal(t, false, v)
}

func TestEvaluatorOrShortCircuits(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(&UserRecord{}, NewCompiler(cat))

	v := execText(t, cat, ctx, `OR(EQ(1, 1), EQ(DIVIDE(1, 0), 1))`)
	assert.Equal(t, true, v)
}

func TestEvaluatorNot(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(&UserRecord{}, NewCompiler(cat))

	assert.Equal(t, false, execText(t, cat, ctx, `NOT(EQ(1, 1))`))
}

func TestEvaluatorDivideByZeroErrors(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(&UserRecord{}, NewCompiler(cat))

	compiled, err := Compile(cat, `DIVIDE(1, 0)`)
	require.Nil(t, err)

	_, eerr := compiled.Execute(ctx)
	require.NotNil(t, eerr)
	assert.Equal(t, KindRuntime, eerr.Kind())
}

func TestEvaluatorArithmetic(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(&UserRecord{}, NewCompiler(cat))

	assert.Equal(t, 5.0, execText(t, cat, ctx, `ADD(2, 3)`))
	assert.Equal(t, 6.0, execText(t, cat, ctx, `MULTIPLY(2, 3)`))
	assert.Equal(t, -1.0, execText(t, cat, ctx, `SUBTRACT(2, 3)`))
	assert.Equal(t, 2.0, execText(t, cat, ctx, `DIVIDE(6, 3)`))
}

func TestEvaluatorProfileField(t *testing.T) {
	cat := DefaultCatalog()

	user := &UserRecord{
		Profile: Profile{
			Demographics: map[string]any{"country": "US"},
		},
	}

	ctx := NewEvalContext(user, NewCompiler(cat))

	assert.Equal(t, "US", execText(t, cat, ctx, `PROFILE("country")`))
	assert.Nil(t, execText(t, cat, ctx, `PROFILE("missing")`))
}

func TestEvaluatorFieldWithoutContextNeverErrors(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(&UserRecord{}, NewCompiler(cat))

	assert.Nil(t, execText(t, cat, ctx, `EVENT("name")`))
	assert.Nil(t, execText(t, cat, ctx, `VISIT("browser")`))
}
