package main

import (
	"fmt"
	"os"
)

// version is set by goreleaser at build time.
var version = "dev"

const usage = `doctree — source documentation reflection engine

Usage:
  doctree convert [flags] [files...]   convert a project into a reflection tree
  doctree diagram [flags]              print a Mermaid class diagram
  doctree serve-mcp [flags]            run the MCP tool server
  doctree version                      print version and exit
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return nil
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:])
	case "diagram":
		return runDiagram(args[1:])
	case "serve-mcp":
		return runServeMCP(args[1:])
	case "version":
		fmt.Println(version)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}
