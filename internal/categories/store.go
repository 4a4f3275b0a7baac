// Package categories keeps the process-local, persisted mapping between a
// blog's category names and their server-side ids.
package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/blogwire/blogwire/internal/entity"
)

// ErrNoSnapshot is returned when no snapshot has been persisted for a key.
var ErrNoSnapshot = errors.New("no categories snapshot")

// Key scopes a snapshot to one blog account.
type Key struct {
	Host     string
	BlogID   string
	Username string
}

// Complete reports whether all identity fields needed for a unique snapshot
// key are set.
func (k Key) Complete() bool {
	return k.Host != "" && k.BlogID != "" && k.Username != ""
}

func (k Key) String() string {
	return fmt.Sprintf("%s_%s_%s", k.Host, k.BlogID, k.Username)
}

// Store defines the interface for persisting category snapshots.
type Store interface {
	// ReadSnapshot retrieves the persisted categories for the key, or
	// ErrNoSnapshot if none exists.
	ReadSnapshot(ctx context.Context, key Key) ([]entity.Category, error)

	// WriteSnapshot persists the categories, overwriting any prior
	// snapshot for the key.
	WriteSnapshot(ctx context.Context, key Key, list []entity.Category) error
}
