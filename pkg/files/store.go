package files

import (
	"context"
)

// Store is the filesystem query surface consumed by the explorer core.
// Implementations must not mutate the filesystem.
type Store interface {
	RootTitle() string
	ListEntries(ctx context.Context, dir string) ([]Entry, error)
	Exists(path string) bool
	IsDirectory(path string) bool
}
