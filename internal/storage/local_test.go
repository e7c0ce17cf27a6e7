package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	err := store.Save(ctx, "resume/u1/file.pdf", strings.NewReader("content"), "application/pdf")
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "resume/u1/file.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := store.Size(ctx, "resume/u1/file.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(len("content")), size)

	reader, err := store.Open(ctx, "resume/u1/file.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, store.Delete(ctx, "resume/u1/file.pdf"))
	exists, err = store.Exists(ctx, "resume/u1/file.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Open(ctx, "resume/u1/file.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing object is a no-op.
	assert.NoError(t, store.Delete(ctx, "resume/u1/file.pdf"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../etc/passwd", "a/../../b", "a//b"} {
		err := store.Save(ctx, key, strings.NewReader("x"), "text/plain")
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestLocalStorage_URLs(t *testing.T) {
	ctx := context.Background()

	store := newLocal(t)
	url, err := store.PublicURL(ctx, "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b.png", url)

	withBase, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.example.com"})
	require.NoError(t, err)
	url, err = withBase.PublicURL(ctx, "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a/b.png", url)

	// Signed URLs on local storage degrade to public ones.
	signed, err := store.SignedURL(ctx, "a/b.png", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b.png", signed)
}

func TestNew_Dispatch(t *testing.T) {
	store, err := New(Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	// Empty type defaults to local.
	store, err = New(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	_, err = New(Config{Type: "ftp"})
	assert.Error(t, err)
}
