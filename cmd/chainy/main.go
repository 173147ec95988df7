package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) //nolint:forbidigo // top level error reporting
		os.Exit(1)
	}
}
