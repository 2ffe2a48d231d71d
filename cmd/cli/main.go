package main

import (
	"fmt"
	"os"

	"github.com/de-tools/health-atlas/pkg/runtime/terminal"
	"github.com/de-tools/health-atlas/pkg/services/analysis"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry: analysis.DefaultRegistry(),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
