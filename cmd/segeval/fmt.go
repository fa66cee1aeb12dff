package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/segrule/lang"
)

// Fmt validates an expression and reformats it, choosing the rendering via
// a nested command the way the teacher's fmt command chooses an output
// encoding.
type Fmt struct {
	Compact  FmtCompact  `cmd:"" default:"withargs" help:"Render as a single canonical line"`
	Expanded FmtExpanded `cmd:""                    help:"Render with one argument per line"`
	YAML     FmtYAML     `cmd:""                    help:"Render the parsed call tree as YAML"`
}

// FmtCompact renders an expression as a single canonically spaced line.
type FmtCompact struct {
	Expr string `arg:"" help:"Expression to reformat" name:"expr"`
}

// Run executes the compact formatting command.
func (f *FmtCompact) Run(ctx context.Context) error {
	catalog := lang.DefaultCatalog()

	out, err := lang.FormatCompact(catalog, f.Expr)
	if err != nil {
		return errFormatExpr.With(slog.String("expr", f.Expr)).Wrap(err)
	}

	fmt.Println(out)

	return nil
}

// FmtExpanded renders an expression with one argument per line.
type FmtExpanded struct {
	Expr string `arg:"" help:"Expression to reformat" name:"expr"`
}

// Run executes the expanded formatting command.
func (f *FmtExpanded) Run(ctx context.Context) error {
	catalog := lang.DefaultCatalog()

	out, err := lang.FormatExpanded(catalog, f.Expr)
	if err != nil {
		return errFormatExpr.With(slog.String("expr", f.Expr)).Wrap(err)
	}

	fmt.Println(out)

	return nil
}

// FmtYAML renders the expression's validation and source as a YAML
// document, a small exercise of the YAML codec the rest of the module uses
// for user-record input.
type FmtYAML struct {
	Expr string `arg:"" help:"Expression to reformat" name:"expr"`
}

// Run executes the YAML formatting command.
func (y *FmtYAML) Run(ctx context.Context) error {
	catalog := lang.DefaultCatalog()

	compact, err := lang.FormatCompact(catalog, y.Expr)
	if err != nil {
		return errFormatExpr.With(slog.String("expr", y.Expr)).Wrap(err)
	}

	doc := map[string]any{
		"expression": y.Expr,
		"compact":    compact,
		"valid":      true,
	}

	data, merr := yaml.MarshalContext(ctx, doc)
	if merr != nil {
		return errMarshalYAML.Wrap(merr)
	}

	fmt.Print(string(data))

	return nil
}
