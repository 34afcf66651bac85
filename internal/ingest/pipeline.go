// Package ingest runs configured sources through parse, coercion, hygiene and write.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/cleanload/internal/admin"
	"github.com/JonMunkholm/cleanload/internal/config"
	"github.com/JonMunkholm/cleanload/internal/core"
	"github.com/JonMunkholm/cleanload/internal/logging"
)

// Pipeline processes sources against one workspace.
type Pipeline struct {
	ws      *admin.Workspace
	sources []core.Source
	policy  core.NullableIntPolicy
}

// NewPipeline creates a pipeline from config and the sources to process, in order.
func NewPipeline(cfg *config.Config, sources []core.Source) (*Pipeline, error) {
	policy, ok := core.ParseNullableIntPolicy(cfg.Pipeline.NullableIntPolicy)
	if !ok {
		return nil, fmt.Errorf("config validation: unknown nullable int policy %q", cfg.Pipeline.NullableIntPolicy)
	}

	return &Pipeline{
		ws: &admin.Workspace{
			Inbox:     cfg.Data.InboxDir,
			Processed: cfg.Data.ProcessedDir,
			Ingested:  cfg.Data.IngestedDir,
			Rejected:  cfg.Data.RejectedDir,
		},
		sources: sources,
		policy:  policy,
	}, nil
}

/* ----------------------------------------
	Main entry for a run
---------------------------------------- */

// Run checks the inbox, resets the output directories and processes every
// source in order. An absent source is skipped. Any error aborts the run;
// the returned summary covers the sources handled before it.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: logging.RunID(ctx), Started: time.Now()}
	defer func() { summary.Duration = time.Since(summary.Started) }()

	if err := p.ws.Prepare(ctx); err != nil {
		return summary, err
	}

	for _, src := range p.sources {
		res, err := p.processSource(ctx, src, p.ws.InboxPath(src.File), true)
		if err != nil {
			return summary, fmt.Errorf("source %s: %w", src.Name, err)
		}
		summary.Results = append(summary.Results, res)
	}

	return summary, nil
}

// RunFile processes a single file outside the inbox. Output directories are
// created if needed but not wiped, and the input file is left in place.
func (p *Pipeline) RunFile(ctx context.Context, path string, src core.Source) (*Summary, error) {
	summary := &Summary{RunID: logging.RunID(ctx), Started: time.Now()}
	defer func() { summary.Duration = time.Since(summary.Started) }()

	if _, err := os.Stat(path); err != nil {
		return summary, fmt.Errorf("data file: %w", err)
	}
	if err := p.ws.EnsureOutputs(); err != nil {
		return summary, err
	}

	res, err := p.processSource(ctx, src, path, false)
	if err != nil {
		return summary, fmt.Errorf("source %s: %w", src.Name, err)
	}
	summary.Results = append(summary.Results, res)
	return summary, nil
}

/* ----------------------------------------
	Process individual source
---------------------------------------- */

func (p *Pipeline) processSource(ctx context.Context, src core.Source, path string, move bool) (SourceResult, error) {
	start := time.Now()
	log := logging.WithFields(ctx, "source", src.Name, "file", filepath.Base(path))

	res := SourceResult{
		Source: src.Name,
		File:   filepath.Base(path),
		Output: src.OutputName(),
	}

	// 1. Absent sources are not an error
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn("input file not found, skipping", "path", path)
		res.Status = StatusSkipped
		return res, nil
	} else if err != nil {
		return res, err
	}

	// 2. Format from suffix; an unknown suffix aborts the whole run
	format, err := core.FormatFromPath(path)
	if err != nil {
		log.Error("unsupported file format", "path", path)
		return res, err
	}

	// 3. Load
	ds, n, err := core.LoadFile(path, format, src.LoadOptions(p.policy))
	if err != nil {
		return res, err
	}
	res.Rows = ds.Len()
	res.Bytes = n
	log.Info("file loaded", "format", format, "rows", ds.Len(), "columns", len(ds.Columns), "bytes", n)

	// 4. Coerce + classify
	kept, rejected := ds, core.NewRejectedSet()
	if src.PassThrough {
		res.Status = StatusPassThrough
	} else {
		kept, rejected, err = Clean(src, ds)
		if err != nil {
			return res, err
		}
		res.Status = StatusIngested
	}
	res.Accepted = kept.Len()
	res.Rejected = rejected.Len()

	// 5. Write outputs; empty datasets write nothing
	if _, err := core.AppendCSV(p.ws.IngestedPath(res.Output), kept); err != nil {
		return res, err
	}
	if _, err := core.AppendCSV(p.ws.RejectedPath(res.Output), rejected); err != nil {
		return res, err
	}

	// 6. Move to processed
	if move {
		if err := p.ws.MoveProcessed(ctx, path); err != nil {
			return res, err
		}
	}

	res.Duration = time.Since(start)
	log.Info("source processed",
		"status", res.Status,
		"accepted", res.Accepted,
		"rejected", res.Rejected,
		"output", res.Output,
		"duration", res.Duration,
	)
	return res, nil
}

// Clean runs a source's coercions and then the hygiene rules.
// Every rejected row lands in the returned RejectedSet exactly once.
func Clean(src core.Source, ds *core.Dataset) (kept, rejected *core.Dataset, err error) {
	kept, rejected = ds, core.NewRejectedSet()

	for _, col := range src.ConvertDates {
		kept, rejected, err = core.ConvertToDates(kept, col, rejected)
		if err != nil {
			return nil, nil, err
		}
	}
	for _, col := range src.IntColumns {
		kept, rejected, err = core.ConvertToInt(kept, col, rejected)
		if err != nil {
			return nil, nil, err
		}
	}

	kept, rejected = core.RemoveDirtyRows(kept, rejected)
	return kept, rejected, nil
}
