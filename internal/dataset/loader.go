package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"superstore/internal/core"
	"superstore/internal/log"
	"superstore/internal/sources"
)

// Observer receives the outcome of a load.
type Observer interface {
	ObserveLoad(report core.LoadReport, duration time.Duration, err error)
}

// Loader reads a source once and keeps the typed table for the lifetime
// of the value. Safe for concurrent use.
type Loader struct {
	reader   sources.Reader
	logger   *log.Logger
	observer Observer

	once   sync.Once
	table  core.Table
	report core.LoadReport
	err    error
	done   chan struct{}
}

// Option configures a Loader.
type Option func(*Loader)

func WithLogger(l *log.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

func WithObserver(o Observer) Option {
	return func(ld *Loader) { ld.observer = o }
}

func NewLoader(reader sources.Reader, opts ...Option) *Loader {
	ld := &Loader{reader: reader, done: make(chan struct{})}
	for _, o := range opts {
		o(ld)
	}
	if ld.logger == nil {
		ld.logger = log.Discard()
	}
	ld.logger = ld.logger.WithComponent(log.ComponentLoader)
	return ld
}

// Load returns the cleaned table. The source is read on the first call only;
// later calls return the same table and error. A missing source yields an
// empty table and an error wrapping core.ErrSourceNotFound.
func (l *Loader) Load(ctx context.Context) (core.Table, core.LoadReport, error) {
	l.once.Do(func() {
		defer close(l.done)
		l.table, l.report, l.err = l.load(ctx)
	})
	return l.table, l.report, l.err
}

// Loaded reports whether the first load has finished.
func (l *Loader) Loaded() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func (l *Loader) load(ctx context.Context) (core.Table, core.LoadReport, error) {
	start := time.Now()
	report := core.LoadReport{Source: l.reader.Name()}

	table, err := l.read(ctx, &report)
	if err != nil {
		table = core.Table{}
	}
	l.logResult(ctx, report, time.Since(start), err)
	if l.observer != nil {
		l.observer.ObserveLoad(report, time.Since(start), err)
	}
	return table, report, err
}

func (l *Loader) read(ctx context.Context, report *core.LoadReport) (core.Table, error) {
	raw, err := l.reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", report.Source, err)
	}
	report.RowsRead = raw.Len()

	table, dropped, err := Normalize(raw)
	report.RowsDropped = dropped
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", report.Source, err)
	}
	return table, nil
}

func (l *Loader) logResult(ctx context.Context, report core.LoadReport, d time.Duration, err error) {
	fields := log.NewFields().
		WithOperation(log.OpLoad).
		WithLoad(report.Source, report.RowsRead, report.RowsDropped).
		WithError(err)
	fields[log.FieldDuration] = d.Milliseconds()

	switch {
	case err == nil:
		l.logger.InfoContext(ctx, "Dataset loaded", fields.ToSlice()...)
	case errors.Is(err, core.ErrSourceNotFound):
		l.logger.WarnContext(ctx, "Data source not found, continuing with an empty table", fields.ToSlice()...)
	default:
		l.logger.ErrorContext(ctx, "Dataset load failed", fields.ToSlice()...)
	}
}
