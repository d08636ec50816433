package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go-fridge-tracker/internal/blob"
)

func TestPathValidatorResolve(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	validator, err := NewPathValidator(root)
	require.NoError(t, err)

	t.Run("nested key resolves inside root", func(t *testing.T) {
		resolved, resolveErr := validator.Resolve("item_photos/abc_milk.jpg")
		require.NoError(t, resolveErr)
		require.Equal(t, filepath.Join(validator.RootAbs(), "item_photos", "abc_milk.jpg"), resolved)
	})

	t.Run("backslashes are normalized", func(t *testing.T) {
		resolved, resolveErr := validator.Resolve(`item_photos\\egg.png`)
		require.NoError(t, resolveErr)
		require.Equal(t, filepath.Join(validator.RootAbs(), "item_photos", "egg.png"), resolved)
	})

	t.Run("root is not an object", func(t *testing.T) {
		_, resolveErr := validator.Resolve("/")
		require.Error(t, resolveErr)
	})

	t.Run("traversal is rejected", func(t *testing.T) {
		_, resolveErr := validator.Resolve("item_photos/../../etc/passwd")
		require.Error(t, resolveErr)
	})

	t.Run("control characters are rejected", func(t *testing.T) {
		_, resolveErr := validator.Resolve("item_photos/a\nb.jpg")
		require.Error(t, resolveErr)
	})

	t.Run("sibling directory with shared prefix is outside root", func(t *testing.T) {
		require.False(t, isWithinRoot("/tmp/blobs", "/tmp/blobs-other/file"))
	})
}

func TestStorePutDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	store, err := New(root, "http://localhost:8080/photos")
	require.NoError(t, err)
	require.Equal(t, blob.DriverFS, store.Driver())

	obj, err := store.Put(ctx, "item_photos/1_milk.jpg", strings.NewReader("jpeg"), blob.PutOptions{ContentType: "image/jpeg", Public: true})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/photos/item_photos/1_milk.jpg", obj.URL)
	require.Equal(t, int64(4), obj.Size)

	content, err := os.ReadFile(filepath.Join(store.RootAbs(), "item_photos", "1_milk.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(content))

	_, err = store.Put(ctx, "item_photos/1_milk.jpg", strings.NewReader("again"), blob.PutOptions{})
	require.Error(t, err)

	exists, err := store.Exists(ctx, "item_photos/1_milk.jpg")
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, store.Delete(ctx, "item_photos/1_milk.jpg"))
	require.NoError(t, store.Delete(ctx, "item_photos/1_milk.jpg"))

	exists, err = store.Exists(ctx, "item_photos/1_milk.jpg")
	require.NoError(t, err)
	require.False(t, exists)

	entries, err := os.ReadDir(filepath.Join(store.RootAbs(), "item_photos"))
	require.NoError(t, err)
	require.Empty(t, entries)
}
