package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code: 0 on
// success, 1 when validation fails, 2 on usage or setup errors.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "skema: config: %v\n", err)
		return 2
	}
	switch args[0] {
	case "check":
		return checkCmd(ctx, cfg, args[1:], stdin, stdout, stderr)
	case "jsonschema":
		return jsonSchemaCmd(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, version)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "skema CLI\n\nUsage:\n  skema check -schema schema.yaml [-format auto|json|yaml] [-max-bytes N] [-max-depth N] [-reject-dup] [-lang en|ja] [-data] [-v] [input...]\n  skema jsonschema -schema schema.yaml\n  skema version\n\nNotes:\n  - check reads stdin when no input files are given and prints one JSON line per input.\n  - Defaults come from SKEMA_LANG, SKEMA_MAX_BYTES, SKEMA_MAX_DEPTH and SKEMA_REJECT_DUPLICATES (a .env file is read when present).")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
