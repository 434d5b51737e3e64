package explorer

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"

	"github.com/filepanel/filepanel/pkg/explorer/view"
	"github.com/filepanel/filepanel/pkg/files"
)

// Listing is the ordered result of enumerating, filtering and sorting
// the current directory.
type Listing struct {
	Entries []files.Entry
	// Count is the number of visible items, shown by the UI as the
	// item-count affordance.
	Count int
}

// sortEntries orders entries for display: directories before files,
// then the active sort key, then name as the final tie-break. The
// collator is nil for the default case-sensitive byte ordering.
func sortEntries(entries []files.Entry, state *view.State, collator *collate.Collator) {
	column := state.SortColumn()
	descending := state.SortDirection() == view.Descending

	compareNames := func(a, b string) int {
		if collator != nil {
			return collator.CompareString(a, b)
		}
		return strings.Compare(a, b)
	}

	primary := func(a, b files.Entry) int {
		switch column {
		case view.ColumnSize:
			switch {
			case a.Size < b.Size:
				return -1
			case a.Size > b.Size:
				return 1
			}
			return 0
		case view.ColumnKind:
			return strings.Compare(a.Kind, b.Kind)
		case view.ColumnDateModified:
			switch {
			case a.Modified.Before(b.Modified):
				return -1
			case a.Modified.After(b.Modified):
				return 1
			}
			return 0
		case view.ColumnDateCreated:
			switch {
			case a.Created.Before(b.Created):
				return -1
			case a.Created.After(b.Created):
				return 1
			}
			return 0
		default:
			return compareNames(a.Name, b.Name)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		// Directories first
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		if c := primary(a, b); c != 0 {
			if descending {
				return c > 0
			}
			return c < 0
		}
		// Name tie-break keeps equal primary keys deterministic.
		return compareNames(a.Name, b.Name) < 0
	})
}
