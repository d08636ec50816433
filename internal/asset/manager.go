// Package asset manages the photo attached to fridge items and item types:
// validation, key minting, upload and best-effort removal.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"go-fridge-tracker/internal/blob"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/util"
	"go-fridge-tracker/pkg/apierror"
)

// DefaultKeyPrefix namespaces photo keys in the blob store.
const DefaultKeyPrefix = "item_photos"

type Options struct {
	// AllowedMIMETypes may contain wildcards; empty allows any image type.
	AllowedMIMETypes []string
	// MaxSize rejects larger uploads; zero disables the limit.
	MaxSize int64
	// MaxDimension downscales larger images; zero keeps originals.
	MaxDimension int
	KeyPrefix    string
}

type Manager struct {
	store  blob.Store
	opts   Options
	logger *slog.Logger
	newID  func() string
}

func NewManager(store blob.Store, opts Options, logger *slog.Logger) *Manager {
	if strings.TrimSpace(opts.KeyPrefix) == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, opts: opts, logger: logger, newID: uuid.NewString}
}

// Upload stores up under a freshly minted key and returns its public reference.
func (m *Manager) Upload(ctx context.Context, up *Upload) (model.AssetRef, error) {
	if !up.Present() {
		return model.AssetRef{}, apierror.BadRequest(model.ErrValidation, "photo is empty", "photo")
	}

	data, err := m.read(up)
	if err != nil {
		return model.AssetRef{}, err
	}

	contentType := util.SniffMIME(data)
	if !util.MIMEAllowed(contentType, m.opts.AllowedMIMETypes) {
		return model.AssetRef{}, apierror.Wrap(model.ErrUnsupportedAsset, "UNSUPPORTED_MEDIA_TYPE",
			"unsupported photo type", contentType, http.StatusUnsupportedMediaType)
	}

	if m.opts.MaxDimension > 0 && util.IsScalableMIME(contentType) {
		scaled, scaledType, changed, scaleErr := downscale(data, m.opts.MaxDimension)
		if scaleErr != nil {
			return model.AssetRef{}, apierror.Wrap(model.ErrUnsupportedAsset, "UNSUPPORTED_MEDIA_TYPE",
				"photo could not be decoded", scaleErr.Error(), http.StatusUnsupportedMediaType)
		}
		if changed {
			m.logger.Debug("photo downscaled", "from_bytes", len(data), "to_bytes", len(scaled), "max_dimension", m.opts.MaxDimension)
			data, contentType = scaled, scaledType
		}
	}

	key := m.opts.KeyPrefix + "/" + m.newID() + "_" + util.SanitizePhotoName(up.Filename)
	obj, err := m.store.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{ContentType: contentType, Public: true})
	if err != nil {
		return model.AssetRef{}, &UploadError{Key: key, Err: err}
	}

	m.logger.Info("photo uploaded", "key", obj.Key, "content_type", contentType, "size", obj.Size, "driver", m.store.Driver())
	return model.AssetRef{URL: obj.URL, Key: obj.Key}, nil
}

// Delete removes key and reports whether the photo is now absent. An empty
// key is already absent. Store failures are logged, not returned.
func (m *Manager) Delete(ctx context.Context, key string) bool {
	if strings.TrimSpace(key) == "" {
		return true
	}
	if err := m.store.Delete(ctx, key); err != nil {
		m.logger.Warn("photo delete failed", "key", key, "error", err)
		return false
	}
	return true
}

func (m *Manager) read(up *Upload) ([]byte, error) {
	reader := up.Body
	if m.opts.MaxSize > 0 {
		reader = io.LimitReader(up.Body, m.opts.MaxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 {
		return nil, apierror.BadRequest(model.ErrValidation, "photo is empty", "photo")
	}
	if m.opts.MaxSize > 0 && int64(len(data)) > m.opts.MaxSize {
		return nil, apierror.New("PAYLOAD_TOO_LARGE", "photo exceeds the upload limit", up.Filename, http.StatusRequestEntityTooLarge)
	}
	return data, nil
}
