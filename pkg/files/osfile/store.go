package osfile

import (
	"context"
	"os"
	"sort"

	"github.com/filepanel/filepanel/pkg/files"
)

var osReadDir = os.ReadDir
var osStat = os.Stat
var osHostname = os.Hostname

var _ files.Store = (*Store)(nil)

// Store reads directory listings from the local filesystem.
type Store struct {
	title string
}

func NewStore() *Store {
	store := Store{}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = "local"
	}
	return &store
}

func (s Store) RootTitle() string {
	return s.title
}

func (s Store) ListEntries(ctx context.Context, dir string) ([]files.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	children, err := osReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]files.Entry, 0, len(children))
	for _, child := range children {
		name := child.Name()
		entry := files.Entry{
			Name:     name,
			IsDir:    child.IsDir(),
			IsHidden: files.IsHiddenName(name),
			Kind:     files.KindOf(name, child.IsDir()),
		}
		if info, err := child.Info(); err == nil {
			entry.Size = info.Size()
			entry.Modified = info.ModTime()
			// Creation time is not portable; modification time stands in.
			entry.Created = info.ModTime()
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (s Store) Exists(path string) bool {
	_, err := osStat(path)
	return err == nil
}

func (s Store) IsDirectory(path string) bool {
	info, err := osStat(path)
	return err == nil && info.IsDir()
}
