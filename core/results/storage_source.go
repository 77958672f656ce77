package results

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"testset-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageSource reads result files from an object storage bucket.
// Object key prefixes play the role of directories.
type StorageSource struct {
	client storage.Client
	bucket string
}

// NewStorageSource creates a bucket backed source.
func NewStorageSource(client storage.Client, bucket string) *StorageSource {
	return &StorageSource{client: client, bucket: bucket}
}

func dirPrefix(name string) string {
	return strings.TrimSuffix(name, "/") + "/"
}

func (s *StorageSource) IsDir(ctx context.Context, name string) bool {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obj, ok := <-s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: dirPrefix(name), MaxKeys: 1})
	return ok && obj.Err == nil
}

func (s *StorageSource) List(ctx context.Context, dir string) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: dirPrefix(dir)}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", s.bucket, dir, obj.Err)
		}
		// Non-recursive listings report sub-prefixes as keys ending in "/"
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

// Open downloads the whole object; result files are small and read in full anyway.
func (s *StorageSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrapErr(name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrapErr(name, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *StorageSource) wrapErr(name string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%w: %s/%s", ErrFileNotFound, s.bucket, name)
	}
	return fmt.Errorf("failed to get %s/%s: %w", s.bucket, name, err)
}

// Archiver copies processed result files into object storage.
type Archiver struct {
	source Source
	client storage.Client
	bucket string
	prefix string
}

// NewArchiver creates an archiver storing copies under bucket/prefix.
func NewArchiver(source Source, client storage.Client, bucket, prefix string) *Archiver {
	return &Archiver{source: source, client: client, bucket: bucket, prefix: prefix}
}

// Archive stores name under <prefix>/<runID>/<base name>.
func (a *Archiver) Archive(ctx context.Context, runID, name string) error {
	rc, err := a.source.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	key := ArchiveKey(a.prefix, runID, name)
	if _, err := a.client.PutObject(ctx, a.bucket, key, rc, -1, minio.PutObjectOptions{ContentType: "text/csv"}); err != nil {
		return fmt.Errorf("failed to archive %s to %s/%s: %w", name, a.bucket, key, err)
	}
	return nil
}

// ArchiveKey builds the object key an archived result file is stored under.
func ArchiveKey(prefix, runID, name string) string {
	return path.Join(prefix, runID, filepath.Base(name))
}
