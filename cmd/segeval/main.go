package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	err := Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		// A failed evaluation (the expression did not compile or errored
		// at runtime) gets its own exit code, distinct from the usage and
		// I/O failures that exit 1. A result that is not a match is not
		// an error and exits 0.
		if isKind(err, kindEvaluate) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}
