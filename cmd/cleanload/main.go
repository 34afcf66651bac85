// Command cleanload cleans the publication, clinical trial and drug exports
// found in the inbox and writes accepted and rejected rows to their own directories.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/JonMunkholm/cleanload/internal/config"
	"github.com/JonMunkholm/cleanload/internal/core"
	"github.com/JonMunkholm/cleanload/internal/core/sources"
	"github.com/JonMunkholm/cleanload/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Set up once per invocation in PersistentPreRunE
	cfg      *config.Config
	registry *core.Registry

	// file command flags
	dataFile    string
	dateColumns []string
)

var rootCmd = &cobra.Command{
	Use:   "cleanload",
	Short: "Clean and load publication, clinical trial and drug exports",
	Long: `cleanload reads the known input files from the inbox, coerces dates and ids,
drops rows with blank or missing values and appends the results as CSV.

Every run starts by wiping the processed, ingested and rejected directories.
Run without arguments to process the whole inbox.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runInbox,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every known source in the inbox",
	Args:  cobra.NoArgs,
	RunE:  runInbox,
}

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Process a single file outside the inbox",
	Long: `Processes one file with the registered source of the same name, or with a
generic source when none matches. Existing outputs are kept and the input
file is left in place.

Example:
  cleanload file --data-file exports/pubmed.csv --date-columns date`,
	Args: cobra.NoArgs,
	RunE: runFile,
}

func init() {
	fileCmd.Flags().StringVar(&dataFile, "data-file", "", "path of the file to process")
	fileCmd.Flags().StringSliceVar(&dateColumns, "date-columns", nil, "columns holding dates (comma separated)")
	_ = fileCmd.MarkFlagRequired("data-file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fileCmd)
}

func main() {
	ctx := logging.WithRunID(context.Background())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		msg := core.MapError(err)
		logging.FromContext(ctx).Error(msg.Message, "code", msg.Code, "action", msg.Action, "error", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	registry, err = sources.FromConfig(cfg.Pipeline.SourcesFile)
	if err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("sources registered", "count", registry.Count())
	return nil
}
