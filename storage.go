package urlcast

import (
	"context"
	"io"
)

// ObjectStore stores published files and exposes them at public URLs.
type ObjectStore interface {
	// Put writes the object at key, replacing any existing object, and
	// returns its public URL.
	Put(ctx context.Context, key, contentType string, r io.Reader) (url string, err error)

	// Get reads the object at key.
	// Returns ENOTFOUND if the object does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
}
