package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"testset-sync/core/config"
	"testset-sync/core/logger"
	"testset-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncFile      string
	syncPath      string
	syncTestSet   string
	syncDelimiter string
	syncDryRun    bool
	syncJSON      bool
)

// syncCmd applies result files to the matching test sets.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Apply test result files to the matching test sets",
	Long: `Reads testName<delimiter>status result files and records each status on the
matching test instances of every test set named after the file.

Flags override the RESULTS_* and REPOSITORY_* configuration.

Examples:
  # Every *.csv file in a directory, test set named after each file
  sync --path ./results

  # One file, explicit test set, semicolon separated
  sync --file nightly.txt --test-set Regression --delimiter ";"

  # Show what would be applied
  sync --path ./results --dry-run --json`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncFile, "file", "", "Explicit result file (wins over --path)")
	syncCmd.Flags().StringVar(&syncPath, "path", "", "Directory of *.csv result files, or a single file")
	syncCmd.Flags().StringVar(&syncTestSet, "test-set", "", "Test-set name used for every file")
	syncCmd.Flags().StringVar(&syncDelimiter, "delimiter", "", `Field delimiter (one character, or \t)`)
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Match test sets without applying results")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Print the run report as JSON")

	RootCmd.AddCommand(syncCmd)
}

// applySyncFlags overrides cfg with the flags that were set.
func applySyncFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Results.File = syncFile
	}
	if flags.Changed("path") {
		cfg.Results.Path = syncPath
	}
	if flags.Changed("test-set") {
		cfg.Repository.TestSetName = syncTestSet
	}
	if flags.Changed("delimiter") {
		cfg.Results.Delimiter = syncDelimiter
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applySyncFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	l.Info("Starting test result sync",
		zap.String("repository", cfg.Repository.URL),
		zap.String("project", cfg.Repository.Project),
		zap.String("path", cfg.Repository.Path),
		zap.String("test_name", cfg.Repository.TestName),
		zap.Bool("dry_run", syncDryRun),
	)

	rt, err := buildRuntime(cfg, l)
	if err != nil {
		return err
	}
	defer rt.close()

	report, err := rt.engine(l).Run(cmd.Context(), specFromConfig(cfg), reconcile.Options{DryRun: syncDryRun})
	if err != nil {
		return err
	}

	if syncJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printSyncReport(l, report)
	return nil
}

// printSyncReport logs one line per file followed by the run summary.
func printSyncReport(l *zap.Logger, report *reconcile.Report) {
	for _, f := range report.Files {
		fields := []zap.Field{
			zap.String("file", f.Path),
			zap.String("test_set", f.LookupName),
			zap.Int("entries", f.Entries),
			zap.Int("test_sets", len(f.TestSets)),
			zap.Int("applied", f.Applied),
		}
		if f.Err != nil {
			l.Warn("File failed", append(fields, zap.Error(f.Err))...)
			continue
		}
		l.Info("File processed", fields...)
	}

	s := report.Summary
	l.Info("Sync report",
		zap.String("run_id", report.RunID),
		zap.Int("total", s.Total),
		zap.Int("files_processed", s.FilesProcessed),
		zap.Int("files_failed", s.FilesFailed),
		zap.Int("test_sets_matched", s.TestSetsMatched),
	)
	if report.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
}
