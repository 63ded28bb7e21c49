package content

import (
	"context"
	"fmt"
	"sync"

	"content-store/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Store reads, writes and deletes content addressed by locators.
// It is safe for concurrent use; the storage client is shared read-only.
type Store struct {
	client        storage.Client
	uploader      storage.Uploader
	bucket        string
	mapper        *KeyMapper
	hook          CompletionHook
	stagingDir    string
	deletePolicy  FailurePolicy
	logger        *zap.Logger
	onAvailable   func(*Store)
	availableOnce sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithAvailableCallback registers fn to run once from NotifyAvailable.
func WithAvailableCallback(fn func(*Store)) Option {
	return func(s *Store) {
		s.onAvailable = fn
	}
}

// WithUploader uploads staged files through u instead of the storage client.
func WithUploader(u storage.Uploader) Option {
	return func(s *Store) {
		s.uploader = u
	}
}

// WithCompletionHook replaces the default UploadHook.
func WithCompletionHook(h CompletionHook) Option {
	return func(s *Store) {
		s.hook = h
	}
}

// NewStore creates a store on top of client and bucket.
func NewStore(client storage.Client, bucket string, cfg Config, logger *zap.Logger, opts ...Option) (*Store, error) {
	mode, err := ParseKeyMode(cfg.KeyMode)
	if err != nil {
		return nil, err
	}
	uploadPolicy, err := ParseFailurePolicy(cfg.UploadFailurePolicy)
	if err != nil {
		return nil, err
	}
	deletePolicy, err := ParseFailurePolicy(cfg.DeleteFailurePolicy)
	if err != nil {
		return nil, err
	}

	s := &Store{
		client:       client,
		uploader:     client,
		bucket:       bucket,
		mapper:       NewKeyMapper(cfg.Protocol, cfg.RootDirectory, mode),
		stagingDir:   cfg.StagingDir,
		deletePolicy: deletePolicy,
		logger:       logger,
	}
	s.hook = NewUploadHook(uploadPolicy, cfg.CleanupStaging, logger)
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Protocol returns the locator protocol tag the store accepts.
func (s *Store) Protocol() string {
	return s.mapper.Protocol()
}

// Bucket returns the bucket content is stored in.
func (s *Store) Bucket() string {
	return s.bucket
}

// IsWriteSupported always returns true.
func (s *Store) IsWriteSupported() bool {
	return true
}

// NewLocator returns a fresh locator for this store's protocol.
func (s *Store) NewLocator() string {
	return NewLocator(s.mapper.Protocol())
}

// ResolveKey maps locator to its object key.
func (s *Store) ResolveKey(locator string) (string, error) {
	return s.mapper.Resolve(locator)
}

// GetReader resolves locator and fetches the object. A missing object is not
// an error; check Reader.Exists. The caller must close the reader or its stream.
func (s *Store) GetReader(ctx context.Context, locator string) (*Reader, error) {
	key, err := s.mapper.Resolve(locator)
	if err != nil {
		return nil, err
	}
	return NewReader(ctx, key, locator, s.client, s.bucket, s.logger), nil
}

// Exists reports whether the content behind locator is present remotely.
func (s *Store) Exists(ctx context.Context, locator string) (bool, error) {
	r, err := s.GetReader(ctx, locator)
	if err != nil {
		return false, err
	}
	defer r.Close()
	return r.Exists(), nil
}

// GetWriter returns a writer for locator, or for a new locator if it is empty.
// existing is the reader of the content being replaced and may be nil.
func (s *Store) GetWriter(_ context.Context, existing *Reader, locator string) (*Writer, error) {
	if locator == "" {
		locator = s.NewLocator()
	}
	key, err := s.mapper.Resolve(locator)
	if err != nil {
		return nil, err
	}
	return NewWriter(WriterConfig{
		Key:        key,
		Locator:    locator,
		Bucket:     s.bucket,
		Client:     s.client,
		Uploader:   s.uploader,
		Existing:   existing,
		Hook:       s.hook,
		StagingDir: s.stagingDir,
		Logger:     s.logger,
	}), nil
}

// Delete removes the content behind locator and reports whether it succeeded.
// A remote failure is logged; it is returned as well unless the delete policy
// is FailureSuppress. Locators of another protocol always return an error.
func (s *Store) Delete(ctx context.Context, locator string) (bool, error) {
	key, err := s.mapper.Resolve(locator)
	if err != nil {
		return false, err
	}

	l := s.logger.With(zap.String("locator", locator), zap.String("key", key))
	l.Debug("Deleting object")

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		l.Error("Error deleting object", zap.Error(err))
		if s.deletePolicy == FailureSuppress {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %w", ErrDeleteFailure, key, err)
	}
	return true, nil
}

// NotifyAvailable runs the availability callback once. Later calls do nothing.
func (s *Store) NotifyAvailable() {
	s.availableOnce.Do(func() {
		s.logger.Debug("Content store available",
			zap.String("bucket", s.bucket),
			zap.String("protocol", s.mapper.Protocol()),
			zap.String("root_directory", s.mapper.RootDirectory()),
		)
		if s.onAvailable != nil {
			s.onAvailable(s)
		}
	})
}
