package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestDiskStore_UploadDownload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Upload(ctx, "user-1/1700000000-abc.pdf", strings.NewReader("hello pdf"))
	require.NoError(t, err)

	blob, err := store.Download(ctx, "user-1/1700000000-abc.pdf")
	require.NoError(t, err)
	defer blob.Close()

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "hello pdf", string(data))
}

func TestDiskStore_RemoveThenExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "user-1/doc.pdf", strings.NewReader("x")))

	exists, err := store.Exists(ctx, "user-1/doc.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Remove(ctx, []string{"user-1/doc.pdf"}))

	exists, err = store.Exists(ctx, "user-1/doc.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDiskStore_RemoveMissingIsNoop(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Remove(context.Background(), []string{"user-1/never-existed.pdf"}))
}

func TestDiskStore_DownloadMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Download(context.Background(), "user-1/missing.pdf")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, path := range []string{"../etc/passwd", "a/../../b", "", "..\\windows"} {
		err := store.Upload(ctx, path, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q should be rejected", path)
	}
}
