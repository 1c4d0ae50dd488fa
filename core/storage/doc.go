// Package storage reads the asset catalog from S3-compatible object storage.
//
// # Client
//
// Client is a three-method view of the MinIO client: a bucket check, a stat and
// a download. Features depend on the interface so they can be tested against
// core/storage/mocks without a running MinIO.
//
// NewClient builds the MinIO client from the storage section (endpoint, keys,
// region, TLS, timeout) with a transport bounded by STORAGE_TIMEOUT_SECONDS.
//
// # Existence checks
//
// ObjectExists turns the NoSuchKey and NoSuchBucket responses into a plain
// false and returns every other failure as an error, so a missing catalog can be
// reported as 404 while an unreachable endpoint stays a 500.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	ok, err := storage.ObjectExists(ctx, client, cfg.Storage.Bucket, "catalog/assets.json")
package storage
