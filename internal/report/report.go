// Package report renders a run summary as a standalone HTML page.
package report

//go:generate templ generate

import (
	"context"
	"fmt"
	"os"

	"github.com/JonMunkholm/cleanload/internal/ingest"
)

// Write renders the summary to path, replacing any previous report.
func Write(ctx context.Context, path string, s *ingest.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := Summary(s).Render(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
