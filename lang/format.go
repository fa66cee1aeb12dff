package lang

import (
	"strconv"
	"strings"
)

// FormatCompact renders text's parsed form as a single-line, canonically
// spaced expression: no space before a '(' or after a '(' or before a ')',
// and ", " between arguments. String-literal contents are reproduced
// byte-for-byte — only the surrounding quote character is canonicalized to
// a double quote.
//
// FormatCompact and FormatExpanded are both semantic no-ops: compiling
// their output produces a [Compiled] that behaves identically to compiling
// text, for any text that parses successfully.
func FormatCompact(catalog *Catalog, text string) (string, *Error) {
	root, err := parseForFormat(catalog, text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeCompact(&b, root)

	return b.String(), nil
}

// FormatExpanded renders text's parsed form with one argument per line,
// indented two spaces per nesting level.
func FormatExpanded(catalog *Catalog, text string) (string, *Error) {
	root, err := parseForFormat(catalog, text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeExpanded(&b, root, 0)

	return b.String(), nil
}

func parseForFormat(catalog *Catalog, text string) (Expr, *Error) {
	if result := Validate(catalog, text); !result.Valid {
		return nil, result.toError()
	}

	return newParser(text).parseExpression()
}

func writeCompact(b *strings.Builder, node Expr) {
	switch n := node.(type) {
	case *CallExpr:
		b.WriteString(n.Name)
		b.WriteByte('(')

		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			writeCompact(b, arg)
		}

		b.WriteByte(')')

	case *NumberLit:
		b.WriteString(formatNumber(n.Value))

	case *StringLit:
		b.WriteString(quoteLiteral(n.Value))

	case *BoolLit:
		b.WriteString(strconv.FormatBool(n.Value))

	case *NullLit:
		b.WriteString("null")
	}
}

func writeExpanded(b *strings.Builder, node Expr, depth int) {
	const indentWidth = 2

	call, ok := node.(*CallExpr)
	if !ok || len(call.Args) == 0 {
		writeCompact(b, node)

		return
	}

	b.WriteString(call.Name)
	b.WriteByte('(')
	b.WriteByte('\n')

	for i, arg := range call.Args {
		b.WriteString(strings.Repeat(" ", (depth+1)*indentWidth))
		writeExpanded(b, arg, depth+1)

		if i < len(call.Args)-1 {
			b.WriteByte(',')
		}

		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat(" ", depth*indentWidth))
	b.WriteByte(')')
}

// quoteLiteral renders s as a double-quoted string literal, escaping only
// the characters that would otherwise break re-parsing.
func quoteLiteral(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('"')

	return b.String()
}
