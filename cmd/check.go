package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"testset-sync/core/config"
	"testset-sync/core/database"
	"testset-sync/core/logger"
	"testset-sync/core/testrepo"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	checkFix  bool
	checkJSON bool
)

// checkCmd verifies the test-management schema.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the test-management database schema",
	Long: `Compares the projects, repository_users, test_sets and test_instances tables
against the expected columns. With --fix, missing tables and columns are created.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "Create missing tables and columns")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the schema report as JSON")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closeDB(db)

	if checkFix {
		l.Info("Migrating schema")
		if err := testrepo.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	report, err := testrepo.CheckSchema(db)
	if err != nil {
		return err
	}

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		for name, tbl := range report.Tables {
			if tbl.Status == "ok" {
				l.Info("Table ok", zap.String("table", name))
				continue
			}
			l.Warn("Table mismatch",
				zap.String("table", name),
				zap.Strings("missing_columns", tbl.MissingColumns),
				zap.Strings("type_mismatches", tbl.TypeMismatches),
			)
		}
		for _, e := range report.Errors {
			l.Error("Schema check error", zap.String("error", e))
		}
	}

	if !report.Matched {
		return fmt.Errorf("schema does not match; run with --fix to migrate")
	}
	l.Info("Schema matches")
	return nil
}
