package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gridiron/internal/services"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps operator-fixable failures to exit status 2; everything
// else, environment failures included, exits 1.
func exitCode(err error) int {
	switch services.Category(err) {
	case services.CategoryInvalidInput, services.CategoryNotFound, services.CategoryConflict:
		return 2
	default:
		return 1
	}
}
