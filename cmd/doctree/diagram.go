package main

import (
	"flag"
	"fmt"

	"github.com/dusk-indust/doctree/internal/export"
)

func runDiagram(args []string) error {
	var flags convertFlags
	fs := flag.NewFlagSet("diagram", flag.ContinueOnError)
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, _, err := convertProject(&flags, fs.Args())
	if err != nil {
		return err
	}

	fmt.Print(export.GenerateMermaid(result.Project))
	return nil
}
