package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"content-store/core/storage/mocks"
	"content-store/feature/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, mem *mocks.Memory) *content.Store {
	t.Helper()
	store, err := content.NewStore(mem, "content", content.Config{
		Protocol:       content.DefaultProtocol,
		RootDirectory:  "data",
		StagingDir:     t.TempDir(),
		CleanupStaging: true,
	}, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestPutContent(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		store := newTestStore(t, mocks.NewMemory())

		w, err := putContent(ctx, store, strings.NewReader("hello"), "")
		require.NoError(t, err)
		assert.Equal(t, int64(5), w.Size())

		var out bytes.Buffer
		require.NoError(t, getContent(ctx, store, w.Locator(), "", &out, zap.NewNop()))
		assert.Equal(t, "hello", out.String())
	})

	t.Run("FailedCopyKeepsExistingContent", func(t *testing.T) {
		mem := mocks.NewMemory()
		store := newTestStore(t, mem)

		w, err := putContent(ctx, store, strings.NewReader("good content"), "")
		require.NoError(t, err)

		boom := errors.New("input truncated")
		in := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(boom))
		_, err = putContent(ctx, store, in, w.Locator())
		assert.ErrorIs(t, err, content.ErrStagingFailure)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, int64(1), mem.Uploads())

		var out bytes.Buffer
		require.NoError(t, getContent(ctx, store, w.Locator(), "", &out, zap.NewNop()))
		assert.Equal(t, "good content", out.String())
	})

	t.Run("UnsupportedProtocol", func(t *testing.T) {
		store := newTestStore(t, mocks.NewMemory())

		_, err := putContent(ctx, store, strings.NewReader("x"), "other://a.bin")
		assert.ErrorIs(t, err, content.ErrUnsupportedProtocol)
	})
}

func TestGetContent(t *testing.T) {
	ctx := context.Background()

	t.Run("ToFile", func(t *testing.T) {
		store := newTestStore(t, mocks.NewMemory())
		w, err := putContent(ctx, store, strings.NewReader("file body"), "")
		require.NoError(t, err)

		output := filepath.Join(t.TempDir(), "out.bin")
		require.NoError(t, getContent(ctx, store, w.Locator(), output, io.Discard, zap.NewNop()))

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "file body", string(data))
	})

	t.Run("MissingLeavesNoFile", func(t *testing.T) {
		store := newTestStore(t, mocks.NewMemory())

		output := filepath.Join(t.TempDir(), "out.bin")
		err := getContent(ctx, store, "store://missing.bin", output, io.Discard, zap.NewNop())
		assert.ErrorIs(t, err, content.ErrContentUnavailable)

		_, statErr := os.Stat(output)
		assert.True(t, os.IsNotExist(statErr))
	})
}
