package files

import (
	"path"
	"strings"
	"time"
)

// Entry describes a single item of a directory listing.
type Entry struct {
	Name     string
	IsDir    bool
	IsHidden bool
	Size     int64
	Kind     string
	Modified time.Time
	Created  time.Time
}

// KindOf derives the user-facing kind label for an entry name.
func KindOf(name string, isDir bool) string {
	if isDir {
		return "Folder"
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "File"
	}
	return strings.ToLower(ext) + " File"
}

// IsHiddenName reports whether a name follows the dotfile convention.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}
