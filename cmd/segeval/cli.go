package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/segrule/log"
)

// CLI is the top-level command-line interface for segeval.
type CLI struct {
	Log logConfig `embed:"" prefix:"log-"`

	Eval Eval `cmd:"" default:"withargs" help:"Evaluate an expression against a user record"`
	Fmt  Fmt  `cmd:""                    help:"Validate and reformat an expression"`
}

// runCtxKey stores the built logger in a context.Context so subcommands
// can retrieve it without a global.
type runCtxKey struct{}

func loggerFrom(ctx context.Context) log.Logger {
	l, _ := ctx.Value(runCtxKey{}).(log.Logger)

	return l
}

// Run parses args against the CLI grammar and executes the selected
// subcommand.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vars := kong.Vars{}.CloneWith(cli.Log.vars())

	parser, err := kong.New(&cli,
		kong.Name("segeval"),
		kong.Description("Evaluate and format user-segmentation rule expressions."),
		kong.UsageOnError(),
		kong.Exit(exit),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := cli.Log.build(ctx)
	ctx = context.WithValue(ctx, runCtxKey{}, logger)

	return ktx.Run(ctx, &cli)
}
