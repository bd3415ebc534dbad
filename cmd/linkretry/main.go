package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

func main() {
	// Respect container CPU quotas; --parallel is capped by GOMAXPROCS.
	undo, err := maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set GOMAXPROCS: %v\n", err)
	}

	err = newRootCmd().ExecuteContext(context.Background())
	undo()
	if err != nil {
		var broken *linkerrors.BrokenLinksError
		if !errors.As(err, &broken) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(linkerrors.ExitCode(err))
	}
}
