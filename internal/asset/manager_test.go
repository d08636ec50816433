package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-fridge-tracker/internal/blob"
	"go-fridge-tracker/internal/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func upload(name string, data []byte) *Upload {
	return &Upload{Filename: name, ContentType: "application/octet-stream", Size: int64(len(data)), Body: bytes.NewReader(data)}
}

func TestUploadPresent(t *testing.T) {
	t.Parallel()

	var nilUpload *Upload
	assert.False(t, nilUpload.Present())
	assert.False(t, (&Upload{Filename: "a.jpg", Size: 3}).Present())
	assert.False(t, (&Upload{Filename: "  ", Size: 3, Body: strings.NewReader("abc")}).Present())
	assert.False(t, (&Upload{Filename: "a.jpg", Size: 0, Body: strings.NewReader("")}).Present())
	assert.True(t, (&Upload{Filename: "a.jpg", Size: -1, Body: strings.NewReader("abc")}).Present())
	assert.True(t, upload("a.png", []byte("x")).Present())
}

func TestUploadThenDeleteRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := blob.NewMemory("http://cdn.local")
	manager := NewManager(store, Options{}, nil)

	ref, err := manager.Upload(ctx, upload("my milk.png", pngBytes(t, 4, 4)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref.Key, "item_photos/"))
	assert.True(t, strings.HasSuffix(ref.Key, "_my_milk.png"))
	assert.Equal(t, "http://cdn.local/"+ref.Key, ref.URL)

	exists, err := store.Exists(ctx, ref.Key)
	require.NoError(t, err)
	require.True(t, exists)

	require.True(t, manager.Delete(ctx, ref.Key))
	exists, err = store.Exists(ctx, ref.Key)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.True(t, manager.Delete(ctx, ref.Key))
	assert.True(t, manager.Delete(ctx, ""))
}

func TestUploadMintsFreshKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := NewManager(blob.NewMemory(""), Options{}, nil)
	data := pngBytes(t, 2, 2)

	first, err := manager.Upload(ctx, upload("same.png", data))
	require.NoError(t, err)
	second, err := manager.Upload(ctx, upload("same.png", data))
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestUploadRejectsUnsupportedContent(t *testing.T) {
	t.Parallel()

	store := blob.NewMemory("")
	manager := NewManager(store, Options{AllowedMIMETypes: []string{"image/jpeg", "image/png"}}, nil)

	_, err := manager.Upload(context.Background(), upload("notes.png", []byte("just some text")))
	require.ErrorIs(t, err, model.ErrUnsupportedAsset)
	assert.Zero(t, store.Len())
}

func TestUploadRejectsNonPresent(t *testing.T) {
	t.Parallel()

	manager := NewManager(blob.NewMemory(""), Options{}, nil)

	_, err := manager.Upload(context.Background(), &Upload{Filename: ""})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestUploadEnforcesMaxSize(t *testing.T) {
	t.Parallel()

	manager := NewManager(blob.NewMemory(""), Options{MaxSize: 16}, nil)

	_, err := manager.Upload(context.Background(), upload("big.png", pngBytes(t, 32, 32)))
	require.ErrorContains(t, err, "PAYLOAD_TOO_LARGE")
}

func TestUploadDownscalesLargeImages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := blob.NewMemory("")
	manager := NewManager(store, Options{MaxDimension: 10}, nil)

	ref, err := manager.Upload(ctx, upload("wide.png", pngBytes(t, 40, 20)))
	require.NoError(t, err)

	r, contentType, ok := store.Open(ref.Key)
	require.True(t, ok)
	assert.Equal(t, "image/png", contentType)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
}

func TestUploadStoreFailureIsUploadError(t *testing.T) {
	t.Parallel()

	store := &blob.MockStore{}
	store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(blob.Object{}, errors.New("bucket unreachable"))

	manager := NewManager(store, Options{}, nil)
	_, err := manager.Upload(context.Background(), upload("egg.png", pngBytes(t, 2, 2)))

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.True(t, strings.HasPrefix(uploadErr.Key, "item_photos/"))
	assert.ErrorContains(t, err, "bucket unreachable")
	store.AssertExpectations(t)
}

func TestDeleteReportsStoreFailure(t *testing.T) {
	t.Parallel()

	store := &blob.MockStore{}
	store.On("Delete", mock.Anything, "item_photos/x.png").Return(errors.New("timeout"))

	manager := NewManager(store, Options{}, nil)
	assert.False(t, manager.Delete(context.Background(), "item_photos/x.png"))
	store.AssertExpectations(t)
}
