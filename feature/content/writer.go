package content

import (
	"context"
	"fmt"
	"os"
	"sync"

	"content-store/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompletionHook runs when a staging stream is closed, before Close returns.
type CompletionHook interface {
	OnStreamClosed(w *Writer, stagedPath string) error
}

// Writer stages written content in a local file and hands it to its
// CompletionHook when the stream is closed.
type Writer struct {
	key        string
	locator    string
	bucket     string
	client     storage.Client
	uploader   storage.Uploader
	existing   *Reader
	hook       CompletionHook
	stagingDir string
	base       *zap.Logger
	logger     *zap.Logger

	mu         sync.Mutex
	stagedPath string
	size       int64
}

// WriterConfig carries the collaborators of a Writer.
type WriterConfig struct {
	Key      string
	Locator  string
	Bucket   string
	Client   storage.Client
	Uploader storage.Uploader
	// Existing is the reader of the content being replaced, if any.
	Existing *Reader
	Hook     CompletionHook
	// StagingDir is the staging file directory; empty means os.TempDir().
	StagingDir string
	Logger     *zap.Logger
}

// NewWriter creates a writer. No staging file exists until OpenWritableStream.
func NewWriter(cfg WriterConfig) *Writer {
	uploader := cfg.Uploader
	if uploader == nil {
		uploader = cfg.Client
	}
	return &Writer{
		key:        cfg.Key,
		locator:    cfg.Locator,
		bucket:     cfg.Bucket,
		client:     cfg.Client,
		uploader:   uploader,
		existing:   cfg.Existing,
		hook:       cfg.Hook,
		stagingDir: cfg.StagingDir,
		base:       cfg.Logger,
		logger:     cfg.Logger.With(zap.String("locator", cfg.Locator), zap.String("key", cfg.Key)),
	}
}

// Locator returns the logical locator being written.
func (w *Writer) Locator() string {
	return w.locator
}

// Key returns the resolved object key.
func (w *Writer) Key() string {
	return w.key
}

// Bucket returns the target bucket.
func (w *Writer) Bucket() string {
	return w.bucket
}

// ExistingReader returns the reader passed at construction, or nil.
func (w *Writer) ExistingReader() *Reader {
	return w.existing
}

// StagedPath returns the most recent staging file, or "" before the first stream.
func (w *Writer) StagedPath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stagedPath
}

// Size returns 0 until a stream's completion hook has run, then the staged length.
func (w *Writer) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *Writer) setSize(n int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = n
}

// OpenWritableStream creates a new staging file and returns a stream writing to it.
// Each call creates a separate file. Closing the stream runs the completion hook
// and returns its error.
func (w *Writer) OpenWritableStream() (*Stream, error) {
	name := uuid.NewString()
	w.logger.Debug("Creating staging file", zap.String("uuid", name))

	f, err := os.CreateTemp(w.stagingDir, name+"-*.bin")
	if err != nil {
		return nil, fmt.Errorf("%w: create staging file: %w", ErrStagingFailure, err)
	}

	w.mu.Lock()
	w.stagedPath = f.Name()
	w.mu.Unlock()

	return &Stream{file: f, writer: w}, nil
}

// CreateReader returns a reader for the same key, for read-after-write.
func (w *Writer) CreateReader(ctx context.Context) *Reader {
	return NewReader(ctx, w.key, w.locator, w.client, w.bucket, w.base)
}

// Stream writes to a staging file. Content reaches the completion hook only
// if every Write succeeded and the stream was closed without a cause.
type Stream struct {
	file   *os.File
	writer *Writer

	mu     sync.Mutex
	failed error

	once sync.Once
	err  error
}

func (s *Stream) Write(p []byte) (int, error) {
	n, err := s.file.Write(p)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrStagingFailure, err)
		s.mu.Lock()
		if s.failed == nil {
			s.failed = err
		}
		s.mu.Unlock()
		return n, err
	}
	return n, nil
}

// Close flushes the staging file and runs the completion hook exactly once.
func (s *Stream) Close() error {
	return s.CloseWithError(nil)
}

// CloseWithError closes the stream. A non-nil cause, an earlier failed Write
// or a failed file close discards the staged content: the hook does not run
// and the staging file is removed.
func (s *Stream) CloseWithError(cause error) error {
	s.once.Do(func() {
		path := s.file.Name()
		closeErr := s.file.Close()

		s.mu.Lock()
		failed := s.failed
		s.mu.Unlock()

		switch {
		case failed != nil:
			s.err = failed
		case cause != nil:
			s.err = fmt.Errorf("%w: aborted: %w", ErrStagingFailure, cause)
		case closeErr != nil:
			s.err = fmt.Errorf("%w: close staging file: %w", ErrStagingFailure, closeErr)
		}

		if s.err != nil {
			s.writer.logger.Error("Discarding staged content", zap.String("path", path), zap.Error(s.err))
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				s.writer.logger.Warn("Failed to remove staging file", zap.String("path", path), zap.Error(err))
			}
			return
		}
		if s.writer.hook != nil {
			s.err = s.writer.hook.OnStreamClosed(s.writer, path)
		}
	})
	return s.err
}
