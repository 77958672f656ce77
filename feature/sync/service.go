package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	gosync "sync"

	"testset-sync/core/reconcile"
	"testset-sync/core/results"
	"testset-sync/core/testrepo"

	"go.uber.org/zap"
)

var (
	// ErrBusy is returned while another run holds the repository session.
	ErrBusy = errors.New("a reconciliation run is already in progress")
	// ErrMissingName is returned when an upload carries neither a test-set name nor a file name.
	ErrMissingName = errors.New("test_set_name or X-Filename is required")
	// ErrPathNotAllowed is returned for a requested file or path outside the configured results path.
	ErrPathNotAllowed = errors.New("path is outside the configured results path")
)

// Request overrides the configured run inputs. Empty fields keep the configuration.
// File and Path must lie within the configured results path.
type Request struct {
	File        string `json:"file"`
	Path        string `json:"path"`
	TestSetName string `json:"test_set_name"`
	DryRun      bool   `json:"dry_run"`
}

// Service runs reconciliations on behalf of HTTP callers.
// Runs are serialized: the repository session is shared.
type Service struct {
	repo     reconcile.Repository
	source   results.Source
	archiver reconcile.Archiver
	defaults reconcile.Spec
	logger   *zap.Logger

	mu gosync.Mutex
}

// NewService creates a sync service. defaults supplies every input a request does not override.
func NewService(repo reconcile.Repository, source results.Source, defaults reconcile.Spec, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		source:   source,
		defaults: defaults,
		logger:   logger,
	}
}

// WithArchiver archives files processed by Sync.
func (s *Service) WithArchiver(a reconcile.Archiver) *Service {
	s.archiver = a
	return s
}

func (s *Service) engine() *reconcile.Engine {
	e := reconcile.NewEngine(s.repo, s.source, s.logger)
	if s.archiver != nil {
		e.WithArchiver(s.archiver)
	}
	return e
}

func (s *Service) spec(req Request) (*reconcile.Spec, error) {
	spec := s.defaults
	if req.File != "" || req.Path != "" {
		root := s.defaults.Results.Path
		for _, p := range []string{req.File, req.Path} {
			if p != "" && !withinRoot(root, p) {
				return nil, fmt.Errorf("%w: %q", ErrPathNotAllowed, p)
			}
		}
		spec.Results.File = req.File
		spec.Results.Path = req.Path
	}
	if req.TestSetName != "" {
		spec.TestSetName = req.TestSetName
	}
	return &spec, nil
}

// withinRoot reports whether name is root or lies beneath it.
// An empty root admits nothing.
func withinRoot(root, name string) bool {
	if root == "" {
		return false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absName, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absName)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Sync runs a reconciliation pass over the configured or requested result files.
func (s *Service) Sync(ctx context.Context, req Request) (*reconcile.Report, error) {
	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	defer s.mu.Unlock()

	spec, err := s.spec(req)
	if err != nil {
		return nil, err
	}
	return s.engine().Run(ctx, spec, reconcile.Options{DryRun: req.DryRun})
}

// Upload parses body as a result file and applies it.
// The lookup name is testSetName if given, else derived from filename.
func (s *Service) Upload(ctx context.Context, testSetName, filename string, body io.Reader, dryRun bool) (*reconcile.Report, error) {
	spec, err := s.spec(Request{TestSetName: testSetName})
	if err != nil {
		return nil, err
	}
	if spec.TestSetName == "" && filename == "" {
		return nil, ErrMissingName
	}

	delimiter, err := spec.Results.DelimiterRune()
	if err != nil {
		return nil, err
	}

	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	defer s.mu.Unlock()

	mapping, stats, err := results.NewParser(s.source, delimiter, s.logger).Parse(body)
	if err != nil {
		return nil, err
	}

	name := filename
	if name == "" {
		name = "upload"
	}
	file := results.NewFile(name, spec.TestSetName)

	return s.engine().RunMapping(ctx, spec, reconcile.Options{DryRun: dryRun}, file, mapping, stats)
}

// TestSets connects and lists the test sets named name under path.
// An empty path falls back to the configured folder.
func (s *Service) TestSets(ctx context.Context, path, name string) ([]testrepo.TestSet, error) {
	if path == "" {
		path = s.defaults.Path
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Connect(ctx, s.defaults.Credentials); err != nil {
		return nil, errors.Join(reconcile.ErrConnect, err)
	}
	return s.repo.FindTestSets(ctx, path, name)
}
