package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/segrule/lang"
)

// Eval evaluates an expression against a user record read from a file.
type Eval struct {
	Expr   string `arg:""                                                 help:"Expression to evaluate" name:"expr"`
	Source string `help:"User record file (JSON or YAML), or '-' for stdin" default:"-"                 short:"f"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	logger := loggerFrom(ctx)

	var file *os.File

	if e.Source == "-" {
		file = os.Stdin
	} else {
		f, err := os.Open(e.Source)
		if err != nil {
			return errReadUser.With(slog.String("source", e.Source)).Wrap(err)
		}
		defer f.Close()

		file = f
	}

	user, err := decodeUser(bufio.NewReader(file))
	if err != nil {
		return errReadUser.With(slog.String("source", e.Source)).Wrap(err)
	}

	catalog := lang.DefaultCatalog()
	eng := lang.NewEngine(catalog)
	eng.SetLogger(logger)

	result := eng.Evaluate(e.Expr, user)

	logger.Expr(e.Expr).DebugContext(ctx, "evaluated expression",
		slog.Bool("success", result.Success),
	)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errMarshalJSON.Wrap(err)
	}

	fmt.Println(string(out))

	if !result.Success {
		return newCmdError(kindEvaluate, result.ErrorMessage)
	}

	return nil
}
