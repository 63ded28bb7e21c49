package content

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"content-store/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Reader binds a locator to a remote object.
//
// The object and its metadata are fetched once, in NewReader, so Exists, Size,
// LastModified and the stream all describe the same object version. The body
// stays open until the stream returned by OpenStream is closed, or until Close
// is called on a reader whose stream was never opened.
type Reader struct {
	key     string
	locator string
	bucket  string
	client  storage.Client
	base    *zap.Logger
	logger  *zap.Logger

	object  storage.Object
	info    *minio.ObjectInfo
	release func() error

	mu     sync.Mutex
	opened bool
}

// NewReader fetches bucket/key and returns a reader for it. Fetch failures are
// logged and leave the reader in the "does not exist" state.
func NewReader(ctx context.Context, key, locator string, client storage.Client, bucket string, logger *zap.Logger) *Reader {
	r := &Reader{
		key:     key,
		locator: locator,
		bucket:  bucket,
		client:  client,
		base:    logger,
		logger:  logger.With(zap.String("locator", locator), zap.String("key", key)),
		release: func() error { return nil },
	}
	r.fetch(ctx)
	return r
}

func (r *Reader) fetch(ctx context.Context) {
	r.logger.Debug("Getting object", zap.String("bucket", r.bucket))

	obj, err := r.client.GetObject(ctx, r.bucket, r.key, minio.GetObjectOptions{})
	if err != nil {
		r.logger.Error("Unable to fetch object", zap.Error(err))
		return
	}

	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if storage.IsNotFound(err) {
			r.logger.Debug("Object does not exist")
		} else {
			r.logger.Error("Unable to fetch object metadata", zap.Error(err))
		}
		return
	}

	r.object = obj
	r.info = &info
	r.release = sync.OnceValue(obj.Close)
}

// Locator returns the logical locator.
func (r *Reader) Locator() string {
	return r.locator
}

// Key returns the resolved object key.
func (r *Reader) Key() string {
	return r.key
}

// Exists reports whether the fetch at construction produced metadata.
func (r *Reader) Exists() bool {
	return r.info != nil
}

// Size returns the object length, or 0 if it does not exist.
func (r *Reader) Size() int64 {
	if r.info == nil {
		return 0
	}
	return r.info.Size
}

// LastModified returns the object modification time, or the zero time if it does not exist.
func (r *Reader) LastModified() time.Time {
	if r.info == nil {
		return time.Time{}
	}
	return r.info.LastModified
}

// OpenStream returns the object body. Closing it releases the remote connection.
// It fails with ErrContentUnavailable if the object does not exist and with
// ErrStreamOpened on a second call; use CreateChildReader for another cursor.
func (r *Reader) OpenStream() (io.ReadCloser, error) {
	if !r.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrContentUnavailable, r.key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opened {
		return nil, fmt.Errorf("%w: %s", ErrStreamOpened, r.key)
	}
	r.opened = true

	return &stream{Reader: r.object, release: r.release}, nil
}

// WithStream opens the stream, hands it to fn and always closes it, also when
// fn fails or panics.
func (r *Reader) WithStream(fn func(io.Reader) error) (err error) {
	rc, err := r.OpenStream()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(rc)
}

// Close releases the remote object, ending any stream handed out by
// OpenStream. It is safe to call more than once.
func (r *Reader) Close() error {
	return r.release()
}

// CreateChildReader returns an independent reader over the same key. It
// performs its own fetch.
func (r *Reader) CreateChildReader(ctx context.Context) *Reader {
	r.logger.Debug("Creating child reader")
	return NewReader(ctx, r.key, r.locator, r.client, r.bucket, r.base)
}

// stream is the caller-facing body; Close releases the object exactly once.
type stream struct {
	io.Reader
	release func() error
}

func (s *stream) Close() error {
	return s.release()
}
