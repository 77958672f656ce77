// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow interface covering what the result
// pipeline needs: reading CI result files from a bucket, listing a prefix the way a
// directory is listed, and archiving processed files. Both AWS S3 and self-hosted
// MinIO are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider so storage interactions can be
// mocked in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "test-results")
package storage
