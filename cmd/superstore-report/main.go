// Command superstore-report prints the sales dashboard for one selection as
// plain text, or copies the configured source into a SQLite database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"superstore/internal/cli"
	"superstore/internal/core"
	"superstore/internal/dataset"
	"superstore/internal/log"
	"superstore/internal/services"
	"superstore/internal/storage"
)

// multiFlag collects a repeatable flag and remembers whether it was given.
type multiFlag struct {
	values []string
	set    bool
}

func (m *multiFlag) String() string { return strings.Join(m.values, ",") }

func (m *multiFlag) Set(v string) error {
	m.set = true
	if v = core.CleanSelectionValue(v); v != "" {
		m.values = append(m.values, v)
	}
	return nil
}

func main() {
	var categories, segments multiFlag
	flag.Var(&categories, "category", "category to include (repeatable, default all)")
	flag.Var(&segments, "segment", "customer segment to include (repeatable, default all)")
	showRows := flag.Bool("rows", false, "print the filtered rows")
	importDB := flag.String("import", "", "copy the loaded dataset into this SQLite database and exit")
	envFile := flag.String("env", "", "optional .env file to load")
	flag.Parse()

	if *envFile != "" {
		cli.LoadEnvFile(*envFile)
	} else {
		cli.LoadEnvFile()
	}
	// Logs go to stderr so stdout carries only the report.
	cfg, logger := cli.LoadAndValidateConfig(os.Stderr)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	res := cli.InitBackend(ctx, logger, cfg)
	if res.Cleanup != nil {
		defer res.Cleanup()
	}

	loader := dataset.NewLoader(res.Reader, dataset.WithLogger(logger))
	base, report, err := loader.Load(ctx)
	if errors.Is(err, core.ErrSourceNotFound) {
		fmt.Fprintln(os.Stderr, "Data file not found:", report.Source)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Failed to load dataset", log.FieldError, err)
		os.Exit(1)
	}

	if *importDB != "" {
		if err := importInto(ctx, *importDB, base, logger); err != nil {
			logger.Error("Import failed", log.FieldError, err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d rows into %s\n", len(base), *importDB)
		return
	}

	sel := base.SelectAll()
	if categories.set {
		sel.Categories = core.NewSet(categories.values...)
	}
	if segments.set {
		sel.Segments = core.NewSet(segments.values...)
	}
	sel.IncludeRows = *showRows

	d, err := services.BuildDashboard(base, sel)
	if errors.Is(err, core.ErrEmptyFilterResult) {
		fmt.Println("No data found for the selected filters. Please adjust the filters.")
		return
	}
	if err != nil {
		logger.Error("Failed to build dashboard", log.FieldError, err)
		os.Exit(1)
	}

	if err := writeReport(os.Stdout, cfg.CurrencySymbol, report, sel, d); err != nil {
		logger.Error("Failed to write report", log.FieldError, err)
		os.Exit(1)
	}
}

func importInto(ctx context.Context, dbPath string, base core.Table, logger *log.Logger) error {
	repo, err := storage.Create(dbPath, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	_, err = repo.Import(ctx, base)
	return err
}
