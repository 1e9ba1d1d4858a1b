package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Download when the key does not exist
var ErrObjectNotFound = errors.New("object not found")

// BlobStore là contract cho object storage (MinIO in production, in-memory in tests)
type BlobStore interface {
	// Upload stores data under key and returns the public URL of the object
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Download returns the object content or ErrObjectNotFound
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
