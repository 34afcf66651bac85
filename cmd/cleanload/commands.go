package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/cleanload/internal/core"
	"github.com/JonMunkholm/cleanload/internal/ingest"
	"github.com/JonMunkholm/cleanload/internal/logging"
	"github.com/JonMunkholm/cleanload/internal/report"
	"github.com/spf13/cobra"
)

// =============================================================================
// RUN - whole inbox
// =============================================================================

func runInbox(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := ingest.NewPipeline(cfg, registry.All())
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx)
	if err != nil {
		return err
	}
	return finish(ctx, summary)
}

// =============================================================================
// FILE - one file, outputs kept
// =============================================================================

func runFile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	src, err := adhocSource(registry, dataFile, dateColumns)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("processing single file", "path", dataFile, "source", src.Name)

	p, err := ingest.NewPipeline(cfg, nil)
	if err != nil {
		return err
	}

	summary, err := p.RunFile(ctx, dataFile, src)
	if err != nil {
		return err
	}
	return finish(ctx, summary)
}

// adhocSource picks the source for a file given on the command line.
// A registered source with the same file name wins; otherwise a generic
// source with hygiene rules and no declared types is used. Date columns
// given explicitly replace the source's own.
func adhocSource(reg *core.Registry, path string, dates []string) (core.Source, error) {
	format, err := core.FormatFromPath(path)
	if err != nil {
		return core.Source{}, err
	}

	base := filepath.Base(path)
	src, ok := reg.ByFile(base)
	if !ok {
		src = core.Source{
			Name: strings.TrimSuffix(base, filepath.Ext(base)),
			File: base,
		}
	}

	if len(dates) > 0 {
		src.DateColumns, src.ConvertDates = nil, nil
		if format == core.FormatRecords {
			src.ConvertDates = dates
		} else {
			src.DateColumns = dates
		}
	}
	return src, nil
}

func finish(ctx context.Context, summary *ingest.Summary) error {
	summary.Log(ctx)

	if cfg.Pipeline.ReportPath == "" {
		return nil
	}
	if err := report.Write(ctx, cfg.Pipeline.ReportPath, summary); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("report written", "path", cfg.Pipeline.ReportPath)
	return nil
}
