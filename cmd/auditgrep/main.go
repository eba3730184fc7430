package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/auditgrep/internal/adapters/driven/archive"
	"github.com/custodia-labs/auditgrep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/auditgrep/internal/adapters/driven/report"
	"github.com/custodia-labs/auditgrep/internal/adapters/driven/snapshot"
	"github.com/custodia-labs/auditgrep/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/auditgrep/internal/adapters/driving/cli"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driven"
	"github.com/custodia-labs/auditgrep/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config and run history are conveniences: if either store cannot
	// be opened the scan itself must still work.
	settings, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config unavailable: %v\n", err)
		settings = nil
	}

	var runs driven.RunStore
	if store, err := sqlite.NewRunStore(""); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run history unavailable: %v\n", err)
	} else {
		runs = store
		defer store.Close()
	}

	archives := archive.New()
	cache := snapshot.NewCache(archives)
	scanner := services.NewScanner(cache, archives, report.NewWriter(), runs)

	config := &cli.Config{
		Scanner: scanner,
		Cache:   cache,
		Runs:    runs,
	}
	if settings != nil {
		config.Settings = settings
	}
	cli.SetConfig(config)

	return cli.Execute()
}
