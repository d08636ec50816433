package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"go-fridge-tracker/internal/blob"
	blobfs "go-fridge-tracker/internal/blob/fs"
	blobs3 "go-fridge-tracker/internal/blob/s3"
	"go-fridge-tracker/internal/config"
	"go-fridge-tracker/internal/database"
	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/docstore/postgres"
	"go-fridge-tracker/internal/docstore/sqlite"
)

// photoRoute is where the fs blob driver's files are served when no public
// base URL is configured.
const photoRoute = "/photos"

// OpenDocstore opens the document store selected by DOCSTORE_DRIVER. The
// returned cleanup releases it.
func OpenDocstore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (docstore.Store, func(), error) {
	switch docstore.Driver(cfg.DocstoreDriver) {
	case docstore.DriverPostgres:
		logger.Info("connecting to PostgreSQL")
		db, err := database.New(ctx, database.Options{
			URL:             cfg.DatabaseURL,
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			ConnectAttempts: cfg.DBConnectAttempts,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure database schema: %w", err)
		}
		return postgres.New(db.Pool), db.Close, nil

	case docstore.DriverSQLite:
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite docstore: %w", err)
		}
		logger.Info("sqlite docstore ready", "path", cfg.SQLitePath)
		return store, func() { _ = store.Close() }, nil

	case docstore.DriverMemory:
		logger.Warn("using in-memory docstore; data is lost on restart")
		return docstore.NewMemory(nil), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown docstore driver %q", cfg.DocstoreDriver)
	}
}

// OpenBlobStore opens the photo store selected by BLOB_DRIVER. The handler is
// non-nil only when this process must serve the photos itself.
func OpenBlobStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (blob.Store, http.Handler, error) {
	switch blob.Driver(cfg.BlobDriver) {
	case blob.DriverFS:
		baseURL := cfg.BlobPublicBaseURL
		if baseURL == "" {
			baseURL = photoRoute
		}
		store, err := blobfs.New(cfg.BlobFSRoot, baseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open fs blob store: %w", err)
		}
		logger.Info("fs blob store ready", "root", store.RootAbs(), "base_url", baseURL)

		var photos http.Handler
		if cfg.BlobPublicBaseURL == "" {
			photos = http.FileServer(http.Dir(store.RootAbs()))
		}
		return store, photos, nil

	case blob.DriverS3:
		store, err := blobs3.New(ctx, blobs3.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PathStyle:       cfg.S3PathStyle,
			PublicBaseURL:   cfg.BlobPublicBaseURL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open s3 blob store: %w", err)
		}
		logger.Info("s3 blob store ready", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
		return store, nil, nil

	case blob.DriverMemory:
		logger.Warn("using in-memory blob store; photos are lost on restart")
		return blob.NewMemory(""), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown blob driver %q", cfg.BlobDriver)
	}
}
