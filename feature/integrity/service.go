package integrity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"testset-sync/core/storage"
	"testset-sync/core/testrepo"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by storage checks when no object storage is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Service handles integrity checks of the database and the result bucket.
type Service struct {
	db      *gorm.DB
	client  storage.Client
	bucket  string
	folders []string
	logger  *zap.Logger
}

// NewService creates a new integrity service. client may be nil when results are read
// from the local filesystem; folders lists the bucket prefixes that must exist.
func NewService(db *gorm.DB, client storage.Client, bucket string, folders []string, logger *zap.Logger) *Service {
	return &Service{
		db:      db,
		client:  client,
		bucket:  bucket,
		folders: folders,
		logger:  logger,
	}
}

// CheckSchema compares the test-management tables against the expected columns.
func (s *Service) CheckSchema() (*testrepo.SchemaReport, error) {
	return testrepo.CheckSchema(s.db)
}

// CheckStorage returns the required folders missing from the bucket.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	missing := []string{}
	for _, folder := range s.folders {
		found, err := s.hasPrefix(ctx, folder)
		if err != nil {
			return nil, err
		}
		if !found {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}

func (s *Service) hasPrefix(ctx context.Context, folder string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: folderKey(folder), MaxKeys: 1}
	obj, ok := <-s.client.ListObjects(ctx, s.bucket, opts)
	if !ok {
		return false, nil
	}
	if obj.Err != nil {
		return false, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
	}
	return true, nil
}

func folderKey(folder string) string {
	return strings.TrimSuffix(folder, "/") + "/"
}

// FixStorage creates the missing folders as empty folder marker objects.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	for _, folder := range missing {
		if _, err := s.client.PutObject(ctx, s.bucket, folderKey(folder), bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
			s.logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
		s.logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
