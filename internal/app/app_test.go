package app

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fridge-tracker/internal/blob"
	"go-fridge-tracker/internal/config"
	"go-fridge-tracker/internal/docstore"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestOpenDocstore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  *config.Config
		want docstore.Driver
	}{
		{name: "memory", cfg: &config.Config{DocstoreDriver: "memory"}, want: docstore.DriverMemory},
		{name: "sqlite", cfg: &config.Config{DocstoreDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "db", "fridge.db")}, want: docstore.DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := OpenDocstore(ctx, tt.cfg, quietLogger())
			require.NoError(t, err)
			defer closeStore()

			assert.Equal(t, tt.want, store.Driver())
			doc, err := store.Create(ctx, docstore.ItemTypes, docstore.Fields{"name": "Milk"})
			require.NoError(t, err)
			_, err = store.Get(ctx, docstore.ItemTypes, doc.ID)
			require.NoError(t, err)
		})
	}

	_, _, err := OpenDocstore(ctx, &config.Config{DocstoreDriver: "mongo"}, quietLogger())
	require.Error(t, err)
}

func TestOpenBlobStoreFSServesPhotos(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{BlobDriver: "fs", BlobFSRoot: t.TempDir()}

	store, photos, err := OpenBlobStore(ctx, cfg, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, photos)

	obj, err := store.Put(ctx, "item_photos/a.png", strings.NewReader("png"), blob.PutOptions{ContentType: "image/png", Public: true})
	require.NoError(t, err)
	assert.Equal(t, "/photos/item_photos/a.png", obj.URL)

	rec := httptest.NewRecorder()
	http.StripPrefix("/photos/", photos).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, obj.URL, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	cfg.BlobPublicBaseURL = "https://cdn.example.com"
	_, photos, err = OpenBlobStore(ctx, cfg, quietLogger())
	require.NoError(t, err)
	assert.Nil(t, photos)
}

func TestOpenBlobStoreMemory(t *testing.T) {
	store, photos, err := OpenBlobStore(context.Background(), &config.Config{BlobDriver: "memory"}, quietLogger())
	require.NoError(t, err)
	assert.Nil(t, photos)
	assert.Equal(t, blob.DriverMemory, store.Driver())
}
