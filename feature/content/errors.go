package content

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProtocol means the locator's protocol tag is not the store's.
	ErrUnsupportedProtocol = errors.New("unsupported content protocol")
	// ErrInvalidLocator means the locator has no relative path after the protocol.
	ErrInvalidLocator = errors.New("invalid content locator")
	// ErrContentUnavailable means the object does not exist remotely.
	ErrContentUnavailable = errors.New("content unavailable")
	// ErrStreamOpened means the reader's single stream was already handed out.
	ErrStreamOpened = errors.New("content stream already opened")
	// ErrStagingFailure means the local staging file could not be created or written.
	ErrStagingFailure = errors.New("staging failure")
	// ErrUploadFailure means the staged file could not be uploaded.
	ErrUploadFailure = errors.New("upload failure")
	// ErrDeleteFailure means the remote delete failed.
	ErrDeleteFailure = errors.New("delete failure")
)

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}
