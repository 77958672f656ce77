package testrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"testset-sync/core/results"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrNotConnected is returned when an operation needs a session that was not established.
	ErrNotConnected = errors.New("not connected to test repository")
	// ErrProjectNotFound is returned when the domain/project pair does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrAuthentication is returned for an unknown login or a wrong password.
	ErrAuthentication = errors.New("authentication failed")
)

// Client records test results in the test-management database.
type Client struct {
	db      *gorm.DB
	logger  *zap.Logger
	project *Project
	tester  string
	now     func() time.Time
}

// NewClient creates a repository client on top of an open database.
func NewClient(db *gorm.DB, logger *zap.Logger) *Client {
	return &Client{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Connect establishes a session: the database must answer, the project must exist
// and the login must authenticate.
func (c *Client) Connect(ctx context.Context, creds Credentials) error {
	if c.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping test repository: %w", err)
	}

	var project Project
	err = c.db.WithContext(ctx).
		Where("domain = ? AND name = ?", creds.Domain, creds.Project).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s/%s", ErrProjectNotFound, creds.Domain, creds.Project)
	}
	if err != nil {
		return fmt.Errorf("failed to load project %s/%s: %w", creds.Domain, creds.Project, err)
	}

	var user User
	err = c.db.WithContext(ctx).Where("login_name = ?", creds.LoginName).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: unknown login %q", ErrAuthentication, creds.LoginName)
	}
	if err != nil {
		return fmt.Errorf("failed to load user %q: %w", creds.LoginName, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return fmt.Errorf("%w: wrong password for %q", ErrAuthentication, creds.LoginName)
	}

	c.project = &project
	c.tester = creds.LoginName

	c.logger.Info("Connected to test repository",
		zap.String("url", creds.URL),
		zap.String("domain", creds.Domain),
		zap.String("project", creds.Project),
		zap.String("login", creds.LoginName),
	)
	return nil
}

// Disconnect ends the session.
func (c *Client) Disconnect() {
	c.project = nil
	c.tester = ""
}

// FindTestSets returns the test sets named name stored at path or below it, ordered by ID.
func (c *Client) FindTestSets(ctx context.Context, path, name string) ([]TestSet, error) {
	if c.project == nil {
		return nil, ErrNotConnected
	}

	var candidates []TestSet
	err := c.db.WithContext(ctx).
		Where("project_id = ? AND name = ?", c.project.ID, name).
		Order("id").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query test sets %q: %w", name, err)
	}

	sets := make([]TestSet, 0, len(candidates))
	for _, set := range candidates {
		if WithinPath(set.Path, path) {
			sets = append(sets, set)
		}
	}
	return sets, nil
}

// ApplyResults records the status of every instance of set whose test name appears
// in mapping. It returns the number of instances updated. All updates of one test set
// commit or roll back together.
func (c *Client) ApplyResults(ctx context.Context, set TestSet, mapping *results.Mapping) (int, error) {
	if c.project == nil {
		return 0, ErrNotConnected
	}

	var instances []TestInstance
	err := c.db.WithContext(ctx).Where("test_set_id = ?", set.ID).Order("id").Find(&instances).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load instances of test set %d: %w", set.ID, err)
	}

	type update struct {
		id     int
		status string
	}
	var updates []update
	seen := make(map[string]struct{}, len(instances))
	for _, inst := range instances {
		seen[inst.TestName] = struct{}{}
		if status, ok := mapping.Get(inst.TestName); ok {
			updates = append(updates, update{id: inst.ID, status: status})
		}
	}
	for _, name := range mapping.Keys() {
		if _, ok := seen[name]; !ok {
			c.logger.Debug("test not in test set", zap.String("test_name", name), zap.Int("test_set_id", set.ID))
		}
	}
	if len(updates) == 0 {
		return 0, nil
	}

	applied := 0
	executedAt := c.now()
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			res := tx.Model(&TestInstance{ID: u.id}).Updates(map[string]any{
				"status":      u.status,
				"tester":      c.tester,
				"executed_at": executedAt,
			})
			if res.Error != nil {
				return fmt.Errorf("failed to update test instance %d: %w", u.id, res.Error)
			}
			if res.RowsAffected > 0 {
				applied++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	c.logger.Debug("Applied results to test set",
		zap.Int("test_set_id", set.ID),
		zap.String("test_set", set.Name),
		zap.Int("applied", applied),
	)
	return applied, nil
}

// WithinPath reports whether setPath equals scope or lies beneath it.
// Both '\' and '/' separate folders; an empty scope matches every path.
func WithinPath(setPath, scope string) bool {
	s := normalizePath(scope)
	if s == "" {
		return true
	}
	p := normalizePath(setPath)
	return p == s || strings.HasPrefix(p, s+"/")
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.Trim(strings.TrimSpace(p), "/")
}
