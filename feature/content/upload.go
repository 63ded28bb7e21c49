package content

import (
	"context"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// UploadHook is the CompletionHook that commits a staged file to the bucket.
type UploadHook struct {
	policy  FailurePolicy
	cleanup bool
	logger  *zap.Logger
}

// NewUploadHook creates an upload hook. With FailureSuppress an upload error is
// only logged; cleanup removes the staging file after a successful upload.
func NewUploadHook(policy FailurePolicy, cleanup bool, logger *zap.Logger) *UploadHook {
	return &UploadHook{policy: policy, cleanup: cleanup, logger: logger}
}

// OnStreamClosed records the staged length on w, then uploads the file.
// The size is recorded whatever the upload outcome.
func (h *UploadHook) OnStreamClosed(w *Writer, stagedPath string) error {
	l := h.logger.With(zap.String("locator", w.Locator()), zap.String("key", w.Key()))

	info, err := os.Stat(stagedPath)
	if err != nil {
		l.Error("Failed to stat staging file", zap.String("path", stagedPath), zap.Error(err))
		return fmt.Errorf("%w: stat staging file: %w", ErrStagingFailure, err)
	}
	w.setSize(info.Size())

	// Close has no context; timeouts are left to the storage client.
	_, err = w.uploader.FPutObject(context.Background(), w.Bucket(), w.Key(), stagedPath, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		l.Error("Failed to upload staged file", zap.String("path", stagedPath), zap.Error(err))
		if h.policy == FailureSuppress {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrUploadFailure, w.Key(), err)
	}

	l.Debug("Uploaded staged file", zap.Int64("size", info.Size()))
	if h.cleanup {
		if err := os.Remove(stagedPath); err != nil {
			l.Warn("Failed to remove staging file", zap.String("path", stagedPath), zap.Error(err))
		}
	}
	return nil
}
