// Package objstore abstracts the public object-storage bucket that holds
// uploaded note assets.
package objstore

import "context"

// Provider is the interface for asset bucket operations. Uploads overwrite
// on key conflict; every uploaded object is publicly addressable.
type Provider interface {
	// EnsureBucket creates the bucket if absent. Idempotent; the first
	// success is cached for the rest of the run.
	EnsureBucket(ctx context.Context) error
	// Upload writes data to key with the given content type, overwriting
	// any existing object.
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// List returns all object keys under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// Remove deletes the given object keys.
	Remove(ctx context.Context, keys []string) error
	// PublicURL returns the public URL for key.
	PublicURL(key string) string
}
