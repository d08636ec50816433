// Package blob defines the object store used for item photos.
package blob

import (
	"context"
	"errors"
	"io"
	"strings"
)

type Driver string

const (
	DriverFS     Driver = "fs"
	DriverS3     Driver = "s3"
	DriverMemory Driver = "memory"
)

var ErrInvalidKey = errors.New("blob: invalid key")

type PutOptions struct {
	ContentType string
	// Public marks the object as anonymously readable at Object.URL.
	Public bool
}

type Object struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

type Store interface {
	// Put writes r under key, replacing nothing: callers mint fresh keys.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error)
	// Delete returns nil when the key does not exist.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Driver() Driver
}

// ValidateKey rejects empty keys and keys that could escape a prefix.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\x00") {
		return ErrInvalidKey
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." || segment == "." {
			return ErrInvalidKey
		}
	}
	return nil
}

// JoinURL appends key to a public base URL.
func JoinURL(base string, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
