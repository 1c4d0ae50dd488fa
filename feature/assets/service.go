package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storage-bridge/core/storage"
	"storage-bridge/feature/inventory"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrCatalogMissing is returned when the bucket or the catalog object does not exist.
var ErrCatalogMissing = errors.New("asset catalog not found")

// Reindexer rebuilds the search index after display names change.
type Reindexer interface {
	Rebuild(ctx context.Context) error
}

// Report describes a catalog import.
type Report struct {
	Object   string        `json:"object"`
	Items    int           `json:"items"`
	Mods     int           `json:"mods"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Status describes the catalog location.
type Status struct {
	Bucket       string `json:"bucket"`
	Object       string `json:"object"`
	BucketExists bool   `json:"bucketExists"`
	ObjectExists bool   `json:"objectExists"`
}

// Service imports item and mod display names from object storage.
type Service struct {
	client    storage.Client
	bucket    string
	object    string
	store     *inventory.Store
	reindexer Reindexer
	logger    *zap.Logger
}

// NewService creates a new asset service. reindexer may be nil.
func NewService(client storage.Client, bucket string, cfg Config, store *inventory.Store, reindexer Reindexer, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		object:    cfg.CatalogObject,
		store:     store,
		reindexer: reindexer,
		logger:    logger,
	}
}

// Status reports whether the bucket and the catalog object exist.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	status := &Status{Bucket: s.bucket, Object: s.object}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	status.BucketExists = exists
	if !exists {
		return status, nil
	}

	status.ObjectExists, err = storage.ObjectExists(ctx, s.client, s.bucket, s.object)
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Import replaces the asset tables with the catalog contents and rebuilds the search index.
func (s *Service) Import(ctx context.Context) (*Report, error) {
	start := time.Now()

	status, err := s.Status(ctx)
	if err != nil {
		return nil, err
	}
	if !status.BucketExists || !status.ObjectExists {
		return nil, fmt.Errorf("%w: %s/%s", ErrCatalogMissing, s.bucket, s.object)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.object, err)
	}
	defer obj.Close()

	catalog, err := ParseCatalog(obj)
	if err != nil {
		return nil, err
	}

	items, mods, skipped := catalog.Rows()
	if err := s.store.ReplaceAssets(ctx, items, mods); err != nil {
		return nil, err
	}

	if s.reindexer != nil {
		if err := s.reindexer.Rebuild(ctx); err != nil {
			s.logger.Warn("Search index rebuild failed after asset import", zap.Error(err))
		}
	}

	report := &Report{
		Object:   s.object,
		Items:    len(items),
		Mods:     len(mods),
		Skipped:  skipped,
		Duration: time.Since(start),
	}
	s.logger.Info("Asset catalog imported",
		zap.String("object", s.object),
		zap.Int("items", report.Items),
		zap.Int("mods", report.Mods),
		zap.Int("skipped", skipped),
		zap.Duration("duration", report.Duration))
	return report, nil
}
