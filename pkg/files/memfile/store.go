package memfile

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/filepanel/filepanel/pkg/files"
)

var _ files.Store = (*Store)(nil)

// Store is an in-memory files.Store used by tests and fixtures.
type Store struct {
	title string
	dirs  map[string][]files.Entry
}

func NewStore(title string) *Store {
	return &Store{
		title: title,
		dirs:  map[string][]files.Entry{},
	}
}

func (s *Store) RootTitle() string {
	return s.title
}

// PutDir registers a directory and its entries, creating parent
// directories implicitly so Exists/IsDirectory see a consistent tree.
func (s *Store) PutDir(dir string, entries ...files.Entry) {
	dir = path.Clean(dir)
	for i, entry := range entries {
		if entry.Kind == "" {
			entries[i].Kind = files.KindOf(entry.Name, entry.IsDir)
		}
		if !entry.IsHidden {
			entries[i].IsHidden = files.IsHiddenName(entry.Name)
		}
	}
	s.dirs[dir] = entries
	for dir != "/" && dir != "." {
		parent := path.Dir(dir)
		if _, ok := s.dirs[parent]; !ok {
			s.dirs[parent] = nil
		}
		dir = parent
	}
}

// RemoveDir unregisters a directory, simulating deletion between
// visits.
func (s *Store) RemoveDir(dir string) {
	delete(s.dirs, path.Clean(dir))
}

func (s *Store) ListEntries(ctx context.Context, dir string) ([]files.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, ok := s.dirs[path.Clean(dir)]
	if !ok {
		return nil, fmt.Errorf("no such directory: %s", dir)
	}
	listed := make([]files.Entry, len(entries))
	copy(listed, entries)
	sort.Slice(listed, func(i, j int) bool {
		return listed[i].Name < listed[j].Name
	})
	return listed, nil
}

func (s *Store) Exists(p string) bool {
	p = path.Clean(p)
	if _, ok := s.dirs[p]; ok {
		return true
	}
	parent, name := path.Split(p)
	entries, ok := s.dirs[path.Clean(parent)]
	if !ok {
		return false
	}
	for _, entry := range entries {
		if entry.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) IsDirectory(p string) bool {
	_, ok := s.dirs[path.Clean(p)]
	return ok
}
