package storage

import (
	"context"
	"errors"
	"io"
)

// Stored describes a persisted object: Ref is the provider-internal handle
// used for removal, URL is what clients are given.
type Stored struct {
	Ref string
	URL string
}

type Provider interface {
	// Save persists the stream under a generated name. The original filename
	// is only consulted for its extension.
	Save(ctx context.Context, originalName string, r io.Reader) (Stored, error)

	// Remove deletes a previously stored object. Removing an unknown ref is
	// not an error.
	Remove(ctx context.Context, ref string) error
}

var ErrInvalidRef = errors.New("invalid_storage_ref")

type NoOpProvider struct{}

func (p *NoOpProvider) Save(ctx context.Context, originalName string, r io.Reader) (Stored, error) {
	return Stored{}, nil
}

func (p *NoOpProvider) Remove(ctx context.Context, ref string) error {
	return nil
}
