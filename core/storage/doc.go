// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the content store can fetch, upload and
// delete objects without depending on a concrete SDK type. Both AWS S3 and
// self-hosted MinIO (or any S3 compatible endpoint) are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
//   - GetObject: Opens an object; Stat on the result fetches metadata.
//   - FPutObject: Uploads a local file (the transfer capability).
//   - RemoveObject: Deletes an object.
//   - BucketExists / MakeBucket: Used by EnsureBucket at startup.
//
// # Credentials
//
// ResolveCredentials runs once per client. A configured access/secret key pair
// wins; otherwise the AWS environment, the shared credentials file and the
// MinIO environment are tried in that order. If none of them yields a key the
// client is built anonymously and authentication errors surface on the first
// request instead of at startup.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage, logger)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
