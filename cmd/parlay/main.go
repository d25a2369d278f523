// Command parlay runs the parallel reasoning workshop demo: sample a prompt
// several times against the Cohere Chat API, vote on the answers, and
// optionally fuse them with a second model call.
//
// Usage:
//
//	parlay run -problem toy        # sample, vote, fuse
//	parlay list                    # list problems
//	parlay tools                   # list registered tools and schemas
//	parlay search -query invoice   # exercise the email tool directly
//
// The API key comes from CO_API_KEY, loaded from .env if present.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "run":
		return cmdRun(ctx, rest)
	case "list":
		return cmdList(rest)
	case "tools":
		return cmdTools(rest)
	case "search":
		return cmdSearch(ctx, rest)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `parlay - parallel reasoning demo for the Cohere Chat API

Commands:
  run     -problem <name> [-n <samples>] [-config parlay.toml]
  list    [-config parlay.toml]
  tools
  search  -query <text> [-after <date>] [-before <date>] [-config parlay.toml]

Configuration:
  CO_API_KEY   Cohere API key (also read from .env)
  parlay.toml  model, problem/corpus paths, worker and retry limits
`)
}

// configFlag registers the shared -config flag on a flag set.
func configFlag(fs *flag.FlagSet) *string {
	return fs.String("config", "parlay.toml", "path to the TOML run config")
}

// loadConfig loads the run config, treating the path as explicit only when
// the flag was set by the user.
func loadConfig(fs *flag.FlagSet, path string) (runConfig, error) {
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	return loadRunConfig(path, explicit)
}
