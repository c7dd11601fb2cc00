// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --version, --verbose, --config, --snap, --timeout-ms

package main

import "flag"

type cliArgs struct {
	version   bool
	verbose   bool
	config    string
	snapPath  string
	timeoutMs int
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.BoolVar(&args.version, "version", false, "Show version and exit")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging to stderr")
	flag.StringVar(&args.config, "config", "", "Path to settings.json (default ~/.snap-store-mcp/settings.json)")
	flag.StringVar(&args.snapPath, "snap", "", "Path to the snap binary")
	flag.IntVar(&args.timeoutMs, "timeout-ms", 0, "Per-invocation timeout in milliseconds")

	flag.Parse()
	return args
}
