package blob

import (
	"bytes"
	"context"
)

// Archiver adapts a Store to the service's plan snapshot sink.
type Archiver struct {
	store Store
}

// NewArchiver wraps a store as a plan archiver.
func NewArchiver(store Store) *Archiver {
	return &Archiver{store: store}
}

// Archive stores one corrected-plan snapshot under key.
func (a *Archiver) Archive(ctx context.Context, key string, data []byte) error {
	_, err := a.store.Put(ctx, key, bytes.NewReader(data), PutOptions{ContentType: "application/json"})
	return err
}
