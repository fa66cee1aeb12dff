package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasicCall(t *testing.T) {
	toks := Tokenize(`EQ(1, "two")`)

	require.Len(t, toks, 7) // EQ ( 1 , "two" ) EOF
}

func TestTokenizeKinds(t *testing.T) {
	toks := Tokenize(`GT(TO_NUMBER("3"), true)`)

	var kinds []TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	assert.Contains(t, kinds, TokenIdent)
	assert.Contains(t, kinds, TokenLParen)
	assert.Contains(t, kinds, TokenString)
	assert.Contains(t, kinds, TokenComma)
	assert.Contains(t, kinds, TokenBool)
	assert.Contains(t, kinds, TokenRParen)
	assert.Equal(t, TokenEOF, kinds[len(kinds)-1])
}

func TestTokenizeBracketKinds(t *testing.T) {
	toks := Tokenize(`EQ({1}, [2])`)

	var kinds []TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	assert.Contains(t, kinds, TokenLBrace)
	assert.Contains(t, kinds, TokenRBrace)
	assert.Contains(t, kinds, TokenLBracket)
	assert.Contains(t, kinds, TokenRBracket)
	assert.NotContains(t, kinds, TokenInvalid)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	toks := Tokenize(`EQ("abc, 1)`)

	found := false

	for _, tok := range toks {
		if tok.Kind == TokenInvalid {
			found = true
		}
	}

	assert.True(t, found)
}

func TestTokenizeNumbers(t *testing.T) {
	toks := Tokenize(`ADD(-1.5, 2e3)`)

	var nums []string

	for _, tok := range toks {
		if tok.Kind == TokenNumber {
			nums = append(nums, tok.Text)
		}
	}

	assert.Equal(t, []string{"-1.5", "2e3"}, nums)
}

func TestIsUppercaseName(t *testing.T) {
	assert.True(t, isUppercaseName("EQ"))
	assert.True(t, isUppercaseName("TO_NUMBER"))
	assert.True(t, isUppercaseName("A1"))
	assert.False(t, isUppercaseName("eq"))
	assert.False(t, isUppercaseName(""))
	assert.False(t, isUppercaseName("1A"))
}
