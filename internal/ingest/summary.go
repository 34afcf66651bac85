package ingest

import (
	"context"
	"time"

	"github.com/JonMunkholm/cleanload/internal/logging"
)

// Status is the outcome of one source in a run.
type Status string

const (
	StatusIngested    Status = "ingested"
	StatusPassThrough Status = "pass-through"
	StatusSkipped     Status = "skipped"
)

// SourceResult contains the result of processing one source.
type SourceResult struct {
	Source   string
	File     string
	Output   string
	Status   Status
	Rows     int   // Rows loaded
	Accepted int   // Rows written to the ingested output
	Rejected int   // Rows written to the rejected output
	Bytes    int64 // Input bytes read
	Duration time.Duration
}

// Summary contains the results of a run.
type Summary struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Results  []SourceResult
}

// Totals sums rows over all results.
func (s *Summary) Totals() (rows, accepted, rejected int) {
	for _, r := range s.Results {
		rows += r.Rows
		accepted += r.Accepted
		rejected += r.Rejected
	}
	return rows, accepted, rejected
}

// Skipped returns the number of sources whose file was absent.
func (s *Summary) Skipped() int {
	n := 0
	for _, r := range s.Results {
		if r.Status == StatusSkipped {
			n++
		}
	}
	return n
}

// Log writes the run totals at info level.
func (s *Summary) Log(ctx context.Context) {
	rows, accepted, rejected := s.Totals()
	logging.FromContext(ctx).Info("run complete",
		"sources", len(s.Results),
		"skipped", s.Skipped(),
		"rows", rows,
		"accepted", accepted,
		"rejected", rejected,
		"duration", s.Duration,
	)
}
