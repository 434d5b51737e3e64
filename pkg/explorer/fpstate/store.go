// Package fpstate persists explorer state across restarts through a
// small key/value abstraction.
package fpstate

// Keys under which the explorer persists its state. The glob filter
// pattern is session-only and deliberately has no key.
const (
	KeyLastDirectory = "lastDirectory"
	KeyHistory       = "history"
	KeyViewState     = "viewState"
	KeyFilter        = "filter"
)

// FilterState is the persisted slice of the directory filter.
type FilterState struct {
	ShowHidden bool `json:"showHidden"`
}

// Store reads and writes persisted values by key. Get reports false
// when the key is absent; a read or decode failure is an error the
// caller treats as absent data.
type Store interface {
	Get(key string, value any) (bool, error)
	Set(key string, value any) error
}
