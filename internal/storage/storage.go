package storage

import (
	"context"
	"errors"
)

// Keys of the persisted collections. Each value is a JSON document.
const (
	KeyUsers        = "culinary_users"
	KeyHistory      = "culinary_history"
	KeySavedRecipes = "culinary_saved_recipes"
	KeyProfile      = "culinary_profile"
	KeySession      = "culinary_session"
)

// AllKeys lists every key the app writes.
var AllKeys = []string{KeyUsers, KeyHistory, KeySavedRecipes, KeyProfile, KeySession}

var ErrNotFound = errors.New("storage: key not found")

// Store is a small keyed document store. Values are opaque bytes; callers
// own encoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
