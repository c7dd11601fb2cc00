// ABOUTME: CLI entry point for the snap-store MCP server
// ABOUTME: Loads settings, builds the tool registry, serves JSON-RPC on stdio

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/knightscode139/snap-store-mcp/internal/config"
	smlog "github.com/knightscode139/snap-store-mcp/internal/log"
	"github.com/knightscode139/snap-store-mcp/internal/mcp"
	"github.com/knightscode139/snap-store-mcp/internal/snap"
	"github.com/knightscode139/snap-store-mcp/internal/tools"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("snap-store-mcp %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the full initialization sequence and serves until stdin closes.
func run(args cliArgs) error {
	cfg, err := config.Load(args.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override settings and env.
	if args.snapPath != "" {
		cfg.SnapPath = args.snapPath
	}
	if args.timeoutMs > 0 {
		cfg.TimeoutMs = args.timeoutMs
	}
	if args.verbose {
		cfg.Verbose = true
	}

	if cfg.Verbose {
		smlog.SetLevel(smlog.LevelDebug)
	}

	// Stdout carries the protocol stream, so a human at a terminal is almost
	// certainly running this by mistake.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "snap-store-mcp speaks JSON-RPC on stdin/stdout; run it from an MCP client")
	}

	client := snap.NewClient(
		cfg.SnapPath,
		time.Duration(cfg.TimeoutMs)*time.Millisecond,
		cfg.MaxOutputBytes,
		int64(cfg.MaxConcurrent),
	)

	registry, err := tools.NewRegistry(client)
	if err != nil {
		return fmt.Errorf("building tool registry: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	smlog.Debug("serving on stdio (snap=%q timeout=%dms)", cfg.SnapPath, cfg.TimeoutMs)
	return mcp.NewServer(registry, os.Stdin, os.Stdout, version).Serve(ctx)
}
