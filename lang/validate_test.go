package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmpty(t *testing.T) {
	cat := DefaultCatalog()

	r := Validate(cat, "   ")
	require.False(t, r.Valid)
	assert.Equal(t, KindSyntax, r.Error().Kind())
}

func TestValidateBadCase(t *testing.T) {
	cat := DefaultCatalog()

	r := Validate(cat, `eq(1, 1)`)
	require.False(t, r.Valid)
	assert.Equal(t, KindSyntax, r.Error().Kind())
	assert.Contains(t, r.Error().Error(), "uppercase")
}

func TestValidateUnbalanced(t *testing.T) {
	cat := DefaultCatalog()

	r := Validate(cat, `EQ(1, 1`)
	require.False(t, r.Valid)
}

func attrString(e *Error, key string) (string, bool) {
	for _, a := range e.LogValue().Group() {
		if a.Key == key {
			return a.Value.String(), true
		}
	}

	return "", false
}

func TestValidateUnbalancedUnclosedOpenerReportsOpenerPosition(t *testing.T) {
	cat := DefaultCatalog()

	r := Validate(cat, `EQ(1, 1`)
	require.False(t, r.Valid)

	reason, ok := attrString(r.Error(), "reason")
	require.True(t, ok)
	assert.Contains(t, reason, "unclosed")

	pos, ok := r.Error().Position()
	require.True(t, ok)
	assert.Equal(t, 2, pos, "opener '(' is at index 2")
}

func TestCheckBalanceUnexpectedCloser(t *testing.T) {
	r := checkBalance(Tokenize(`)EQ(1, 1)`))
	require.False(t, r.Valid)

	reason, ok := attrString(r.Error(), "reason")
	require.True(t, ok)
	assert.Contains(t, reason, "unexpected")

	pos, ok := r.Error().Position()
	require.True(t, ok)
	assert.Equal(t, 0, pos)
}

func TestCheckBalanceMismatchedBracketKinds(t *testing.T) {
	r := checkBalance(Tokenize(`EQ(1, 1]`))
	require.False(t, r.Valid)

	reason, ok := attrString(r.Error(), "reason")
	require.True(t, ok)
	assert.Contains(t, reason, "mismatched")

	_, ok = attrString(r.Error(), "openPos")
	assert.True(t, ok, "mismatched-pair error must report the opener's position")

	_, ok = attrString(r.Error(), "closePos")
	assert.True(t, ok, "mismatched-pair error must report the closer's position")
}

func TestCheckBalanceUnclosedBracket(t *testing.T) {
	r := checkBalance(Tokenize(`[EQ(1, 1)`))
	require.False(t, r.Valid)

	reason, ok := attrString(r.Error(), "reason")
	require.True(t, ok)
	assert.Contains(t, reason, "unclosed '['")

	pos, ok := r.Error().Position()
	require.True(t, ok)
	assert.Equal(t, 0, pos, "unclosed opener is reported at its own position")
}

func TestCheckBalanceAllBracketKindsBalanceCleanly(t *testing.T) {
	r := checkBalance(Tokenize(`EQ({1}, [1])`))
	assert.True(t, r.Valid)
}

func TestValidateUndefinedFunction(t *testing.T) {
	cat := DefaultCatalog()

	r := Validate(cat, `EQAL(1, 1)`)
	require.False(t, r.Valid)

	pos, ok := r.Error().Position()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, pos, 0)
}

func TestValidateArity(t *testing.T) {
	cat := DefaultCatalog()

	r := Validate(cat, `EQ(1)`)
	require.False(t, r.Valid)
}

func TestValidateOK(t *testing.T) {
	cat := DefaultCatalog()

	r := Validate(cat, `AND(EQ(1, 1), GT(2, 1))`)
	assert.True(t, r.Valid)
}

func TestValidateOrderEmptyBeforeCase(t *testing.T) {
	// An empty expression is reported as empty, never routed through the
	// later stages.
	cat := DefaultCatalog()

	r := Validate(cat, "")
	require.False(t, r.Valid)
	assert.Equal(t, "expression is empty", r.Error().Error())
}
