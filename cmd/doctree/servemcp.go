package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/doctree/internal/config"
	"github.com/dusk-indust/doctree/internal/logging"
	"github.com/dusk-indust/doctree/internal/mcptools"
)

func runServeMCP(args []string) error {
	var (
		projectRoot string
		addr        string
		dbPath      string
		verbose     bool
	)
	fs := flag.NewFlagSet("serve-mcp", flag.ContinueOnError)
	fs.StringVar(&projectRoot, "project-root", ".", "path to the project")
	fs.StringVar(&addr, "addr", "localhost:8720", "address to listen on")
	fs.StringVar(&dbPath, "db", "", "graph database directory (default: in-memory)")
	fs.BoolVar(&verbose, "verbose", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(verbose || cfg.Verbose)
	defer log.Sync()

	st, err := openStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	svc := mcptools.NewDocService(st, cfg.Converter, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "MCP server listening on %s\n", addr)
	return mcptools.RunMCPServer(ctx, svc, addr)
}
