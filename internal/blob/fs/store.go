// Package fs stores blobs as files below a root directory. Objects are
// served publicly by the HTTP router under the configured base URL.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-fridge-tracker/internal/blob"
)

type Store struct {
	validator *PathValidator
	baseURL   string
}

func New(root string, publicBaseURL string) (*Store, error) {
	validator, err := NewPathValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}

	return &Store{validator: validator, baseURL: publicBaseURL}, nil
}

func (s *Store) Driver() blob.Driver { return blob.DriverFS }

func (s *Store) RootAbs() string {
	return s.validator.RootAbs()
}

// Put writes to a temporary file in the target directory and renames it into place.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, opts blob.PutOptions) (blob.Object, error) {
	if err := blob.ValidateKey(key); err != nil {
		return blob.Object{}, err
	}
	resolved, err := s.validator.Resolve(key)
	if err != nil {
		return blob.Object{}, err
	}
	if err := ctx.Err(); err != nil {
		return blob.Object{}, err
	}

	if _, err := os.Stat(resolved); err == nil {
		return blob.Object{}, fmt.Errorf("blob %s already exists", key)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return blob.Object{}, fmt.Errorf("create parent directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return blob.Object{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	size, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return blob.Object{}, fmt.Errorf("write blob %s: %w", key, err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		return blob.Object{}, fmt.Errorf("chmod blob %s: %w", key, err)
	}
	if err := os.Rename(tmpName, resolved); err != nil {
		return blob.Object{}, fmt.Errorf("rename blob %s: %w", key, err)
	}

	return blob.Object{
		Key:         key,
		URL:         blob.JoinURL(s.baseURL, key),
		ContentType: opts.ContentType,
		Size:        size,
	}, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	resolved, err := s.validator.Resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", key, err)
	}
	return nil
}

func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	resolved, err := s.validator.Resolve(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat blob %s: %w", key, err)
	}
	return !info.IsDir(), nil
}
