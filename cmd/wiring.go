package cmd

import (
	"fmt"
	"time"

	"testset-sync/core/config"
	"testset-sync/core/database"
	"testset-sync/core/reconcile"
	"testset-sync/core/results"
	"testset-sync/core/storage"
	"testset-sync/core/testrepo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles the collaborators shared by the sync and start commands.
type runtime struct {
	db       *gorm.DB
	client   *testrepo.Client
	store    storage.Client
	repo     reconcile.Repository
	source   results.Source
	archiver reconcile.Archiver
}

func (r *runtime) engine(l *zap.Logger) *reconcile.Engine {
	e := reconcile.NewEngine(r.repo, r.source, l)
	if r.archiver != nil {
		e.WithArchiver(r.archiver)
	}
	return e
}

func (r *runtime) close() {
	r.client.Disconnect()
	closeDB(r.db)
}

// closeDB releases the pool behind db.
func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// buildRuntime connects the database and, when needed, object storage.
func buildRuntime(cfg *config.Config, l *zap.Logger) (*runtime, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrConnect, err)
	}

	client := testrepo.NewClient(db, l)
	rt := &runtime{
		db:     db,
		client: client,
		repo:   reconcile.NewCachedRepository(client, time.Duration(cfg.Repository.CacheTTLSeconds)*time.Second),
		source: results.NewLocalSource(),
	}

	if cfg.Results.Source != results.SourceStorage && cfg.Results.ArchivePrefix == "" {
		return rt, nil
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	rt.store = store
	if cfg.Results.Source == results.SourceStorage {
		rt.source = results.NewStorageSource(store, cfg.Storage.Bucket)
	}
	if cfg.Results.ArchivePrefix != "" {
		rt.archiver = results.NewArchiver(rt.source, store, cfg.Storage.Bucket, cfg.Results.ArchivePrefix)
	}
	return rt, nil
}

// specFromConfig builds the run inputs from configuration.
func specFromConfig(cfg *config.Config) *reconcile.Spec {
	return &reconcile.Spec{
		Results:     cfg.Results,
		Credentials: cfg.Repository.Credentials(),
		Path:        cfg.Repository.Path,
		TestSetName: cfg.Repository.TestSetName,
	}
}

// storageFolders lists the bucket prefixes the configuration relies on.
func storageFolders(cfg *config.Config) []string {
	var folders []string
	if cfg.Results.Source == results.SourceStorage && cfg.Results.File == "" && cfg.Results.Path != "" {
		folders = append(folders, cfg.Results.Path)
	}
	if cfg.Results.ArchivePrefix != "" {
		folders = append(folders, cfg.Results.ArchivePrefix)
	}
	return folders
}
