package reconcile

import (
	"context"
	"errors"

	"testset-sync/core/results"
	"testset-sync/core/testrepo"
)

// ErrConnect marks a failure to establish the repository session. It is fatal to the run.
var ErrConnect = errors.New("failed to connect to test repository")

// Repository is the narrow view of the test-management repository used by the engine.
type Repository interface {
	// Connect establishes the session used by the other operations.
	Connect(ctx context.Context, creds testrepo.Credentials) error
	// FindTestSets returns the test sets named name at or below path.
	FindTestSets(ctx context.Context, path, name string) ([]testrepo.TestSet, error)
	// ApplyResults records mapping on set and returns how many statuses were applied.
	ApplyResults(ctx context.Context, set testrepo.TestSet, mapping *results.Mapping) (int, error)
}

// Archiver stores a processed result file.
type Archiver interface {
	Archive(ctx context.Context, runID, name string) error
}

// Spec defines what a reconciliation run processes and where results go.
type Spec struct {
	// Results locates the result files.
	Results results.Config

	// Credentials open the repository session.
	Credentials testrepo.Credentials

	// Path is the folder under which test sets are searched.
	Path string

	// TestSetName, when set, is the lookup name for every file.
	TestSetName string
}

// Options controls run behavior.
type Options struct {
	// RunID identifies the run in logs, reports and archive keys.
	// A random UUID is generated when empty.
	RunID string

	// DryRun resolves and matches test sets but applies nothing.
	DryRun bool
}

// State is the lifecycle position of a run.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateProcessing State = "processing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// TestSetReport describes what happened to one matched test set.
type TestSetReport struct {
	ID      int    `json:"id"`
	Path    string `json:"path"`
	Name    string `json:"name"`
	Applied int    `json:"applied"`
	// Planned is the number of results offered to the test set.
	Planned int    `json:"planned"`
	Error   string `json:"error,omitempty"`
}

// FileReport is the outcome of processing one result file.
type FileReport struct {
	Path       string             `json:"path"`
	LookupName string             `json:"lookup_name"`
	Entries    int                `json:"entries"`
	Stats      results.ParseStats `json:"stats"`
	TestSets   []TestSetReport    `json:"test_sets"`
	Applied    int                `json:"applied"`
	Error      string             `json:"error,omitempty"`

	// Err keeps the original error for errors.Is checks.
	Err error `json:"-"`
}

// Summary aggregates a run. Total is the number of individual test statuses applied.
type Summary struct {
	Total           int `json:"total"`
	FilesProcessed  int `json:"files_processed"`
	FilesFailed     int `json:"files_failed"`
	TestSetsMatched int `json:"test_sets_matched"`
}

// Add accumulates a processed file into the summary.
func (s *Summary) Add(f FileReport) {
	s.FilesProcessed++
	if f.Err != nil {
		s.FilesFailed++
	}
	s.TestSetsMatched += len(f.TestSets)
	s.Total += f.Applied
}

// Report is the outcome of a run.
type Report struct {
	RunID   string       `json:"run_id"`
	DryRun  bool         `json:"dry_run"`
	State   State        `json:"state"`
	Files   []FileReport `json:"files"`
	Summary Summary      `json:"summary"`
}
