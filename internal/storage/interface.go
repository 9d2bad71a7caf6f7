package storage

import (
	"context"
	"io"
)

// BlobStore is key-addressed binary storage. PublicURL must be a pure
// function of the key (no network round trip) so callers can decorate
// fetched records without extra calls.
type BlobStore interface {
	Upload(ctx context.Context, key string, data io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}
