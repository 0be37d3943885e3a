package domain

import "context"

// BlobStore lists and reads objects from a flat, slash-keyed object store.
type BlobStore interface {
	// List returns the names of all objects whose key starts with prefix, in listing order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Read downloads the full contents of the named object.
	Read(ctx context.Context, name string) ([]byte, error)
}

// ContentFetcher assembles the source text stored under a prefix.
type ContentFetcher interface {
	Fetch(ctx context.Context, prefix string) (string, error)
}
