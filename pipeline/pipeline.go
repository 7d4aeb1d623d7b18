// Package pipeline runs a load, preview, count and normalize pass over one target.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"pancard/dataloader/appcontext"
	"pancard/dataloader/config"
	"pancard/dataloader/normalize"
	"pancard/dataloader/source"
	"pancard/dataloader/table"
)

// ErrNoLoader is returned when a target resolves to a data source without a loader.
var ErrNoLoader = errors.New("no loader registered for data source")

// NoLoaderError wraps ErrNoLoader with the data source.
func NoLoaderError(ds source.DataSource) error {
	return fmt.Errorf("%w, %s", ErrNoLoader, ds)
}

// Loader reads a record table from a location within its data source.
type Loader interface {
	Load(ctx context.Context, location string) (*table.Table, error)
}

// Dependencies holds all the dependencies for the Pipeline.
type Dependencies struct {
	Config     *config.Config
	Resolver   source.InfoExtractor
	Loaders    map[source.DataSource]Loader
	Normalizer *normalize.Normalizer
	// Out receives the previews and the record count.
	Out io.Writer
}

// Report summarises a run.
type Report struct {
	RunID   string
	Source  *source.SourceInfo
	Records int
	Stats   *normalize.Stats
	// Table is the normalized table.
	Table *table.Table
}

// Pipeline orchestrates Loader -> preview -> count -> Normalizer -> preview.
type Pipeline struct {
	deps Dependencies
}

// New creates a new Pipeline instance.
func New(deps Dependencies) *Pipeline {
	if deps.Config == nil {
		deps.Config = &config.Config{Column: normalize.DefaultColumn, PreviewRows: table.DefaultPreviewRows}
	}
	if deps.Resolver == nil {
		deps.Resolver = source.NewResolver()
	}
	if deps.Normalizer == nil {
		deps.Normalizer = normalize.New()
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Pipeline{deps: deps}
}

// Run loads target, prints a preview, the record count, normalizes the
// configured column in place and prints the preview again.
func (p *Pipeline) Run(ctx context.Context, target string) (*Report, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Starting normalization run", "target", target)

	info, err := p.deps.Resolver.ExtractInfo(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source: %w", err)
	}

	loader, ok := p.deps.Loaders[info.DataSource]
	if !ok || loader == nil {
		return nil, NoLoaderError(info.DataSource)
	}

	tbl, err := loader.Load(ctx, info.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", target, err)
	}

	rows := p.deps.Config.PreviewRows
	if err := table.Render(p.deps.Out, tbl, rows); err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(p.deps.Out, "Total records = %d\n", tbl.Len()); err != nil {
		return nil, fmt.Errorf("failed to write record count: %w", err)
	}

	stats, err := p.deps.Normalizer.Column(ctx, tbl, p.deps.Config.Column)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize column %s: %w", p.deps.Config.Column, err)
	}

	if err := table.Render(p.deps.Out, tbl, rows); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Normalization run completed successfully.", "source", info.DataSource, "records", humanize.Comma(int64(tbl.Len())))
	stats.Log(logger)

	return &Report{
		RunID:   appcontext.RunIDFromContext(ctx),
		Source:  info,
		Records: tbl.Len(),
		Stats:   stats,
		Table:   tbl,
	}, nil
}
