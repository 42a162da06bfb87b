package persist

import (
	"context"
	"errors"
)

// StorageKey is where the board keeps its working copy.
const StorageKey = "whiteboard/persistence/v1"

var ErrNotFound = errors.New("no stored board")

// Store keeps opaque payloads by key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Clear(ctx context.Context, key string) error
}

// Nop stores nothing. Loads always report ErrNotFound.
type Nop struct{}

func (Nop) Load(context.Context, string) ([]byte, error) { return nil, ErrNotFound }
func (Nop) Save(context.Context, string, []byte) error   { return nil }
func (Nop) Clear(context.Context, string) error          { return nil }
