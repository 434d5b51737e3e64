package explorer

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/stretchr/testify/require"

	"github.com/filepanel/filepanel/pkg/explorer/fpstate"
	"github.com/filepanel/filepanel/pkg/explorer/pathres"
	"github.com/filepanel/filepanel/pkg/explorer/view"
	"github.com/filepanel/filepanel/pkg/files"
	"github.com/filepanel/filepanel/pkg/files/memfile"
)

type fakeEnv struct {
	vars map[string]string
	home string
}

func (e fakeEnv) Get(name string) (string, bool) {
	value, ok := e.vars[name]
	return value, ok
}

func (e fakeEnv) Home() (string, error) {
	return e.home, nil
}

func newTestStore() *memfile.Store {
	store := memfile.NewStore("test")
	store.PutDir("/work",
		files.Entry{Name: "a.txt", Size: 100},
		files.Entry{Name: "B.txt", Size: 50},
		files.Entry{Name: "sub", IsDir: true},
		files.Entry{Name: ".env", Size: 10},
	)
	store.PutDir("/work/sub",
		files.Entry{Name: "nested.md", Size: 5},
	)
	store.PutDir("/home/user",
		files.Entry{Name: "notes.txt", Size: 1},
	)
	return store
}

func newTestController(t *testing.T, store *memfile.Store, persist fpstate.Store, opts ...Option) *Controller {
	t.Helper()
	env := fakeEnv{home: "/home/user", vars: map[string]string{"WORK": "/work"}}
	ctrl, err := New(store, persist, env, "/work", opts...)
	require.NoError(t, err)
	return ctrl
}

func listingNames(t *testing.T, ctrl *Controller) []string {
	t.Helper()
	listing, err := ctrl.Listing()
	require.NoError(t, err)
	names := make([]string, 0, len(listing.Entries))
	for _, entry := range listing.Entries {
		names = append(names, entry.Name)
	}
	return names
}

func TestController_InitialState(t *testing.T) {
	ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())

	assert.Equal(t, "/work", ctrl.CurrentDirectory())
	assert.Equal(t, "/work", ctrl.LaunchDirectory())
	assert.Equal(t, "test", ctrl.RootTitle())
	assert.False(t, ctrl.CanGoBack())
	assert.False(t, ctrl.CanGoForward())
	assert.False(t, ctrl.ShowHidden())

	// Hidden entries are filtered out; directories sort first.
	assert.Equal(t, []string{"sub", "B.txt", "a.txt"}, listingNames(t, ctrl))
}

func TestController_NavigateTo(t *testing.T) {
	t.Run("relative_path_commits", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		require.NoError(t, ctrl.NavigateTo("sub"))
		assert.Equal(t, "/work/sub", ctrl.CurrentDirectory())
		assert.True(t, ctrl.CanGoBack())
		assert.Equal(t, []string{"nested.md"}, listingNames(t, ctrl))
	})

	t.Run("glob_input_filters_without_navigation", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		require.NoError(t, ctrl.NavigateTo("*.txt"))

		assert.Equal(t, "/work", ctrl.CurrentDirectory())
		assert.Equal(t, "*.txt", ctrl.FilterPattern())
		assert.False(t, ctrl.CanGoBack()) // no history push for filters
		assert.Equal(t, []string{"B.txt", "a.txt"}, listingNames(t, ctrl))
	})

	t.Run("navigation_clears_filter_pattern", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		require.NoError(t, ctrl.NavigateTo("*.txt"))
		require.NoError(t, ctrl.NavigateTo("sub"))
		assert.Equal(t, "", ctrl.FilterPattern())
	})

	t.Run("resolution_error_keeps_state", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		err := ctrl.NavigateTo("/no/such/dir")
		assert.True(t, errors.Is(err, pathres.ErrNotFound))
		assert.Equal(t, "/work", ctrl.CurrentDirectory())
		assert.False(t, ctrl.CanGoBack())
		assert.Equal(t, []string{"sub", "B.txt", "a.txt"}, listingNames(t, ctrl))
	})

	t.Run("env_variable_target", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		require.NoError(t, ctrl.NavigateTo("sub"))
		require.NoError(t, ctrl.NavigateTo("$WORK"))
		assert.Equal(t, "/work", ctrl.CurrentDirectory())
	})
}

func TestController_HistoryNavigation(t *testing.T) {
	t.Run("back_and_forward", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		require.NoError(t, ctrl.NavigateTo("sub"))

		moved, err := ctrl.NavigateBack()
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, "/work", ctrl.CurrentDirectory())

		moved, err = ctrl.NavigateForward()
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, "/work/sub", ctrl.CurrentDirectory())
	})

	t.Run("back_with_no_history_is_benign", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		moved, err := ctrl.NavigateBack()
		require.NoError(t, err)
		assert.False(t, moved)
		assert.Equal(t, "/work", ctrl.CurrentDirectory())
	})

	t.Run("forward_at_newest_is_benign", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		require.NoError(t, ctrl.NavigateTo("sub"))
		moved, err := ctrl.NavigateForward()
		require.NoError(t, err)
		assert.False(t, moved)
	})
}

func TestController_NavigateUpAndShortcuts(t *testing.T) {
	store := newTestStore()
	ctrl := newTestController(t, store, fpstate.NewMemStore())

	require.NoError(t, ctrl.NavigateTo("sub"))
	require.NoError(t, ctrl.NavigateUp())
	assert.Equal(t, "/work", ctrl.CurrentDirectory())

	require.NoError(t, ctrl.NavigateToShortcut(ShortcutHome))
	assert.Equal(t, "/home/user", ctrl.CurrentDirectory())

	require.NoError(t, ctrl.NavigateToShortcut(ShortcutRoot))
	assert.Equal(t, "/", ctrl.CurrentDirectory())

	require.NoError(t, ctrl.NavigateToShortcut(ShortcutLaunch))
	assert.Equal(t, "/work", ctrl.CurrentDirectory())
}

func TestController_ListingOrder(t *testing.T) {
	t.Run("name_ascending_directories_first_case_sensitive", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		assert.Equal(t, []string{"sub", "B.txt", "a.txt"}, listingNames(t, ctrl))
	})

	t.Run("sort_by_size_descending", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		require.NoError(t, ctrl.SetSort(view.ColumnSize, view.Descending))
		assert.Equal(t, []string{"sub", "a.txt", "B.txt"}, listingNames(t, ctrl))
	})

	t.Run("sort_column_becomes_visible", func(t *testing.T) {
		ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
		require.NoError(t, ctrl.SetColumns([]view.Column{view.ColumnKind}))
		require.NoError(t, ctrl.SetSort(view.ColumnSize, view.Descending))

		snapshot := ctrl.ViewState()
		found := false
		for _, name := range snapshot.VisibleColumns {
			if name == string(view.ColumnSize) {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("name_tie_break_on_equal_sizes", func(t *testing.T) {
		store := memfile.NewStore("test")
		store.PutDir("/flat",
			files.Entry{Name: "b.log", Size: 7},
			files.Entry{Name: "a.log", Size: 7},
			files.Entry{Name: "c.log", Size: 7},
		)
		env := fakeEnv{home: "/home/user"}
		ctrl, err := New(store, fpstate.NewMemStore(), env, "/flat")
		require.NoError(t, err)
		require.NoError(t, ctrl.SetSort(view.ColumnSize, view.Ascending))
		assert.Equal(t, []string{"a.log", "b.log", "c.log"}, listingNames(t, ctrl))
	})
}

func TestController_ToggleHidden(t *testing.T) {
	ctrl := newTestController(t, newTestStore(), fpstate.NewMemStore())
	require.NoError(t, ctrl.ToggleHidden())
	assert.True(t, ctrl.ShowHidden())
	assert.Equal(t, []string{"sub", ".env", "B.txt", "a.txt"}, listingNames(t, ctrl))

	require.NoError(t, ctrl.ToggleHidden())
	assert.False(t, ctrl.ShowHidden())
	assert.Equal(t, []string{"sub", "B.txt", "a.txt"}, listingNames(t, ctrl))
}

func TestController_Refresh(t *testing.T) {
	store := newTestStore()
	ctrl := newTestController(t, store, fpstate.NewMemStore())

	// The listing is cached until something invalidates it.
	store.PutDir("/work",
		files.Entry{Name: "a.txt", Size: 100},
		files.Entry{Name: "fresh.txt", Size: 1, Modified: time.Now()},
	)
	require.NoError(t, ctrl.Refresh())
	assert.Equal(t, []string{"a.txt", "fresh.txt"}, listingNames(t, ctrl))
	assert.False(t, ctrl.CanGoBack()) // refresh never touches history
}

func TestController_PersistenceRoundTrip(t *testing.T) {
	store := newTestStore()
	persist := fpstate.NewMemStore()

	first := newTestController(t, store, persist)
	require.NoError(t, first.NavigateTo("sub"))
	require.NoError(t, first.SetSort(view.ColumnSize, view.Descending))
	require.NoError(t, first.SetViewMode(view.ModeColumns))
	require.NoError(t, first.ToggleHidden())

	second := newTestController(t, store, persist)
	assert.Equal(t, first.CurrentDirectory(), second.CurrentDirectory())
	assert.Equal(t, first.ViewState(), second.ViewState())
	assert.Equal(t, first.CanGoBack(), second.CanGoBack())
	assert.Equal(t, first.CanGoForward(), second.CanGoForward())
	assert.True(t, second.ShowHidden())

	// The session filter pattern is never persisted.
	require.NoError(t, first.NavigateTo("*.md"))
	third := newTestController(t, store, persist)
	assert.Equal(t, "", third.FilterPattern())
}

func TestController_MalformedPersistedState(t *testing.T) {
	store := newTestStore()
	persist := fpstate.NewMemStore()
	require.NoError(t, persist.Set(fpstate.KeyHistory, map[string]any{"entries": []string{}, "cursor": 9}))
	require.NoError(t, persist.Set(fpstate.KeyViewState, map[string]any{"mode": "carousel"}))
	require.NoError(t, persist.Set(fpstate.KeyLastDirectory, "/no/such/dir"))

	ctrl := newTestController(t, store, persist)
	assert.Equal(t, "/work", ctrl.CurrentDirectory())
	assert.Equal(t, view.ModeList, ctrl.ViewMode())
	assert.False(t, ctrl.CanGoBack())
}

func TestController_ViewChangeFailureKeepsState(t *testing.T) {
	store := newTestStore()
	ctrl := newTestController(t, store, fpstate.NewMemStore())
	before := ctrl.ViewState()

	// The directory disappears, so every view change fails to relist.
	store.RemoveDir("/work")

	assert.Error(t, ctrl.SetSort(view.ColumnSize, view.Descending))
	assert.Error(t, ctrl.SetViewMode(view.ModeGallery))
	assert.Error(t, ctrl.ToggleColumn(view.ColumnKind))
	assert.Error(t, ctrl.SetColumns([]view.Column{view.ColumnSize}))

	assert.Equal(t, before, ctrl.ViewState())
	assert.Equal(t, view.ModeList, ctrl.ViewMode())
}

func TestController_StaleHistoryEntry(t *testing.T) {
	store := newTestStore()
	ctrl := newTestController(t, store, fpstate.NewMemStore())
	require.NoError(t, ctrl.NavigateTo("sub"))

	// The previous directory disappears between visits.
	store.RemoveDir("/work")

	moved, err := ctrl.NavigateBack()
	assert.False(t, moved)
	assert.Error(t, err)
	assert.Equal(t, "/work/sub", ctrl.CurrentDirectory())
	assert.True(t, ctrl.CanGoBack()) // cursor rolled back, entry still there
}
