// Package main implements a command line front end that shows a file
// dialog and prints the selection.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	a := newApp(os.Stdout, os.Stderr)
	cmd := a.rootCmd()

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
	os.Exit(a.exitCode)
}
