// Command lookup queries the dictionary from the command line and prints the
// result as JSON on stdout. It uses the same configuration as the server.
//
// Usage:
//
//	lookup cat dog            batch lookup
//	lookup -suggest cat       autocomplete
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/heartmarshall/paradict-backend/internal/app"
	"github.com/heartmarshall/paradict-backend/internal/config"
)

func main() {
	suggest := flag.Bool("suggest", false, "print autocomplete options for the first argument")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-suggest] word [word...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)
	svcs := app.NewServices(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var out any
	if *suggest {
		out, err = svcs.Lookup.Autocomplete(ctx, flag.Arg(0))
	} else {
		out, err = svcs.Lookup.LookupMany(ctx, flag.Args())
	}
	if err != nil {
		logger.Error("lookup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("write output", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
