package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains artifact storage abstractions. Primary uploads
// live under the "documents/" key prefix; derived previews live under
// "converted/" keyed by the primary artifact's base name.

// ErrObjectNotFound is returned when a key does not exist in the backend.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for storing objects.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the artifact store behind the document lifecycle. Methods use
// context and streaming readers; keys are slash-separated and relative to
// the configured root.
type Storage interface {
	// Put stores an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Returns ErrObjectNotFound if absent.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is present under the key.
	Exists(ctx context.Context, key string) (bool, error)
}
