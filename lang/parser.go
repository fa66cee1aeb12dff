package lang

import "log/slog"

// parser builds an [Expr] tree from a token stream. It is only ever invoked
// by [Compile] on text that has already passed [Validate], so any error it
// returns indicates a parser/compiler skew bug rather than malformed user
// input — callers classify it as [KindCompilation].
type parser struct {
	toks []Token
	pos  int
}

func newParser(src string) *parser {
	return &parser{toks: Tokenize(src)}
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if t.Kind != TokenEOF {
		p.pos++
	}

	return t
}

// parseExpression parses a single top-level expression and requires EOF
// immediately after it.
func (p *parser) parseExpression() (Expr, *Error) {
	expr, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind != TokenEOF {
		return nil, ErrCompilation.With(
			slog.String("reason", "trailing input after expression"),
		).AtPosition(p.peek().Pos)
	}

	return expr, nil
}

func (p *parser) parseValue() (Expr, *Error) {
	t := p.peek()

	switch t.Kind {
	case TokenNumber:
		p.advance()

		return parseNumberToken(t)

	case TokenString:
		p.advance()

		return &StringLit{Value: t.Text, Raw: t.Raw, Pos: t.Pos}, nil

	case TokenBool:
		p.advance()

		return &BoolLit{Value: t.Text == "true", Pos: t.Pos}, nil

	case TokenNull:
		p.advance()

		return &NullLit{Pos: t.Pos}, nil

	case TokenIdent:
		return p.parseCall()

	default:
		return nil, ErrCompilation.With(
			slog.String("reason", "expected a value"),
			slog.String("found", t.Kind.String()),
		).AtPosition(t.Pos)
	}
}

func (p *parser) parseCall() (Expr, *Error) {
	name := p.advance()

	open := p.peek()
	if open.Kind != TokenLParen {
		return nil, ErrCompilation.With(
			slog.String("reason", "expected '(' after function name"),
			slog.String("name", name.Text),
		).AtPosition(open.Pos)
	}

	p.advance()

	call := &CallExpr{Name: name.Text, NamePos: name.Pos, OpenPos: open.Pos}

	if p.peek().Kind == TokenRParen {
		close := p.advance()
		call.ClosePos = close.Pos

		return call, nil
	}

	for {
		arg, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		call.Args = append(call.Args, arg)

		switch p.peek().Kind {
		case TokenComma:
			p.advance()

			continue

		case TokenRParen:
			close := p.advance()
			call.ClosePos = close.Pos

			return call, nil

		default:
			return nil, ErrCompilation.With(
				slog.String("reason", "expected ',' or ')'"),
			).AtPosition(p.peek().Pos)
		}
	}
}

func parseNumberToken(t Token) (Expr, *Error) {
	f, ok := parseFloat(t.Text)
	if !ok {
		return nil, ErrCompilation.With(
			slog.String("reason", "malformed numeric literal"),
			slog.String("text", t.Text),
		).AtPosition(t.Pos)
	}

	return &NumberLit{Value: f, Raw: t.Text, Pos: t.Pos}, nil
}
