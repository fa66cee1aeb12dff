package lang

import (
	"log/slog"
	"strings"
)

// ValidationResult is the outcome of [Validate]: either the expression is
// well-formed, or exactly one of the five ordered checks from §4.1 failed.
// Validate always returns a result — it never panics, and a failing result
// is a value a caller can inspect without unwinding an error.
type ValidationResult struct {
	Valid bool
	err   *Error
}

// toError converts a failing result to the [Error] a caller should surface.
// Calling it on a valid result returns nil.
func (r ValidationResult) toError() *Error {
	return r.err
}

// Error returns the underlying failure, or nil if the expression is valid.
func (r ValidationResult) Error() *Error { return r.err }

func valid() ValidationResult             { return ValidationResult{Valid: true} }
func invalid(err *Error) ValidationResult { return ValidationResult{Valid: false, err: err} }

// Validate runs the five ordered structural checks from §4.1 against text:
// emptiness, function-name casing, delimiter balance, and — only once those
// pass — whether every named function is registered in catalog, and
// finally whether every call's argument count matches its descriptor's
// arity. Each stage only runs once every earlier stage has passed, and the
// first failure found is reported; Validate never reports more than one
// problem at a time.
func Validate(catalog *Catalog, text string) ValidationResult {
	if strings.TrimSpace(text) == "" {
		return invalid(ErrEmptyExpression)
	}

	toks := Tokenize(text)

	if r := checkCase(toks); !r.Valid {
		return r
	}

	if r := checkBalance(toks); !r.Valid {
		return r
	}

	if r := checkUndefined(catalog, toks); !r.Valid {
		return r
	}

	return checkArity(catalog, text)
}

// checkCase requires every identifier (every candidate function name, since
// the grammar admits no other use of an identifier) to match
// [A-Z_][A-Z0-9_]*.
func checkCase(toks []Token) ValidationResult {
	for _, t := range toks {
		if t.Kind != TokenIdent {
			continue
		}

		if !isUppercaseName(t.Text) {
			return invalid(ErrBadCase.With(
				slog.String("name", t.Text),
				slog.String("suggestion", strings.ToUpper(t.Text)),
			).AtPosition(t.Pos))
		}
	}

	return valid()
}

// closesFor maps each opening delimiter kind to the closing kind that must
// eventually match it.
var closesFor = map[TokenKind]TokenKind{
	TokenLParen:   TokenRParen,
	TokenLBracket: TokenRBracket,
	TokenLBrace:   TokenRBrace,
}

// bracketFrame records an opening delimiter waiting for its match, so a
// mismatch or an unclosed opener can be reported at its own position.
type bracketFrame struct {
	kind TokenKind
	pos  int
}

// checkBalance does a single linear scan over toks, pushing each of '(',
// '[', '{' onto a stack and popping on its matching closer. It reports one
// of three distinct failures: a closer that doesn't match the innermost
// open delimiter (both positions), a closer with nothing open to match
// (its own position), or an opener left on the stack at EOF (the opener's
// position). It also rejects any [TokenInvalid] lexed along the way — the
// lexer's signal for, among other things, an unterminated string.
func checkBalance(toks []Token) ValidationResult {
	var stack []bracketFrame

	for _, t := range toks {
		switch t.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			stack = append(stack, bracketFrame{kind: t.Kind, pos: t.Pos})

		case TokenRParen, TokenRBracket, TokenRBrace:
			if len(stack) == 0 {
				return invalid(ErrUnbalanced.With(
					slog.String("reason", "unexpected '"+t.Raw+"'"),
				).AtPosition(t.Pos))
			}

			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if closesFor[top.kind] != t.Kind {
				return invalid(ErrUnbalanced.With(
					slog.String("reason", "mismatched delimiters"),
					slog.Int("openPos", top.pos),
					slog.Int("closePos", t.Pos),
				).AtPosition(t.Pos))
			}

		case TokenInvalid:
			return invalid(ErrUnbalanced.With(
				slog.String("reason", "unterminated or malformed token"),
				slog.String("text", t.Raw),
			).AtPosition(t.Pos))
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]

		return invalid(ErrUnbalanced.With(
			slog.String("reason", "unclosed '"+top.kind.String()+"'"),
		).AtPosition(top.pos))
	}

	return valid()
}

// checkUndefined requires every identifier to name a registered catalog
// function, offering a fuzzy-matched suggestion when one is close enough.
func checkUndefined(catalog *Catalog, toks []Token) ValidationResult {
	names := catalog.Names()

	for _, t := range toks {
		if t.Kind != TokenIdent {
			continue
		}

		if _, ok := catalog.Lookup(t.Text); ok {
			continue
		}

		e := ErrUndefinedFunction.With(slog.String("name", t.Text))

		if s := suggestName(t.Text, names); s != "" {
			e = e.With(slog.String("suggestion", s))
		}

		return invalid(e.AtPosition(t.Pos))
	}

	return valid()
}

// checkArity parses text (which has already passed the case, balance, and
// undefined-function checks, so a parse failure here is itself reported as
// a syntax problem rather than promoted to the compiler-skew classification
// [parser] uses) and walks the resulting tree verifying every call's
// argument count against its descriptor.
func checkArity(catalog *Catalog, text string) ValidationResult {
	root, err := newParser(text).parseExpression()
	if err != nil {
		return invalid(NewError(KindSyntax, "malformed expression").Wrap(err).AtPosition(err.pos))
	}

	return walkArity(catalog, root)
}

func walkArity(catalog *Catalog, node Expr) ValidationResult {
	call, ok := node.(*CallExpr)
	if !ok {
		return valid()
	}

	descriptor, ok := catalog.Lookup(call.Name)
	if !ok {
		// Unreachable: checkUndefined already rejected this name.
		return invalid(ErrUndefinedFunction.With(slog.String("name", call.Name)).AtPosition(call.NamePos))
	}

	if !descriptor.AcceptsArity(len(call.Args)) {
		return invalid(ErrBadArity.With(
			slog.String("name", call.Name),
			slog.Int("got", len(call.Args)),
			slog.Int("min", descriptor.MinArity),
			slog.Int("max", descriptor.MaxArity),
		).AtPosition(call.NamePos))
	}

	for _, arg := range call.Args {
		if r := walkArity(catalog, arg); !r.Valid {
			return r
		}
	}

	return valid()
}
