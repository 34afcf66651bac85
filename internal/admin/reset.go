// Package admin provides the directory housekeeping around a run.
package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/cleanload/internal/core"
	"github.com/JonMunkholm/cleanload/internal/logging"
)

// Workspace is the directory layout a run reads from and writes to.
type Workspace struct {
	Inbox     string
	Processed string
	Ingested  string
	Rejected  string
}

type dirResetFn func(ctx context.Context) error

// CheckInbox verifies the inbox exists. Nothing else is touched.
func (w *Workspace) CheckInbox(ctx context.Context) error {
	abs, _ := filepath.Abs(w.Inbox)

	info, err := os.Stat(w.Inbox)
	if err != nil || !info.IsDir() {
		logging.FromContext(ctx).Warn("directory does not exist, please create before proceeding", "dir", abs)
		return fmt.Errorf("inbox %q: %w", abs, core.ErrPrecondition)
	}

	logging.FromContext(ctx).Info("checking directory exists", "dir", abs)
	return nil
}

// ResetAll removes and recreates the processed, ingested and rejected
// directories. This wipes the outputs of any previous run.
func (w *Workspace) ResetAll(ctx context.Context) error {
	return w.runResets(ctx, []dirResetFn{
		w.recreate(w.Processed),
		w.recreate(w.Ingested),
		w.recreate(w.Rejected),
	})
}

// Prepare checks the inbox and then resets the output directories.
func (w *Workspace) Prepare(ctx context.Context) error {
	if err := w.CheckInbox(ctx); err != nil {
		return err
	}
	return w.ResetAll(ctx)
}

// EnsureOutputs creates the ingested and rejected directories if missing,
// keeping whatever they already hold.
func (w *Workspace) EnsureOutputs() error {
	for _, dir := range []string{w.Ingested, w.Rejected} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func (w *Workspace) runResets(ctx context.Context, resets []dirResetFn) error {
	for _, reset := range resets {
		if err := reset(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workspace) recreate(dir string) dirResetFn {
	return func(ctx context.Context) error {
		abs, _ := filepath.Abs(dir)
		logging.FromContext(ctx).Info("destroying and recreating directory", "dir", abs)

		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		return nil
	}
}

// InboxPath returns the inbox location of a source file.
func (w *Workspace) InboxPath(file string) string {
	return filepath.Join(w.Inbox, filepath.Base(file))
}

// IngestedPath returns the accepted-rows destination for an output name.
func (w *Workspace) IngestedPath(output string) string {
	return filepath.Join(w.Ingested, filepath.Base(output))
}

// RejectedPath returns the rejected-rows destination for an output name.
func (w *Workspace) RejectedPath(output string) string {
	return filepath.Join(w.Rejected, filepath.Base(output))
}

// MoveProcessed moves a consumed input file into the processed directory.
func (w *Workspace) MoveProcessed(ctx context.Context, path string) error {
	logging.FromContext(ctx).Info("moving processed file",
		"from", filepath.Dir(path),
		"to", w.Processed,
		"file", filepath.Base(path),
	)

	dest := filepath.Join(w.Processed, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("failed moving file %s: %w", filepath.Base(path), err)
	}
	return nil
}
