package filepanel

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/require"

	"github.com/filepanel/filepanel/pkg/explorer"
	"github.com/filepanel/filepanel/pkg/explorer/fpstate"
	"github.com/filepanel/filepanel/pkg/explorer/view"
	"github.com/filepanel/filepanel/pkg/files"
	"github.com/filepanel/filepanel/pkg/files/memfile"
)

type fakeEnv struct {
	home string
}

func (e fakeEnv) Get(string) (string, bool) {
	return "", false
}

func (e fakeEnv) Home() (string, error) {
	return e.home, nil
}

func newTestPanel(t *testing.T, options ...Option) *Panel {
	t.Helper()
	store := memfile.NewStore("test")
	store.PutDir("/work",
		files.Entry{Name: "a.txt", Size: 100},
		files.Entry{Name: "sub", IsDir: true},
	)
	store.PutDir("/work/sub",
		files.Entry{Name: "nested.md", Size: 5},
	)
	ctrl, err := explorer.New(store, fpstate.NewMemStore(), fakeEnv{home: "/home/user"}, "/work")
	require.NoError(t, err)
	return New(tview.NewApplication(), ctrl, options...)
}

func statusText(p *Panel) string {
	return p.status.GetText(true)
}

func TestPanel_Render(t *testing.T) {
	p := newTestPanel(t)

	assert.Equal(t, "Name", p.table.GetCell(0, 0).Text)
	assert.Equal(t, "Size", p.table.GetCell(0, 1).Text)

	// Directories order first and carry the folder marker.
	assert.Equal(t, "📁sub", p.table.GetCell(1, 0).Text)
	assert.Equal(t, " a.txt", p.table.GetCell(2, 0).Text)
	assert.Equal(t, "100B", p.table.GetCell(2, 1).Text)
	assert.Equal(t, "", p.table.GetCell(1, 1).Text)

	assert.True(t, strings.Contains(statusText(p), "2 items"))
	assert.True(t, strings.Contains(statusText(p), "test:/work"))
	assert.Equal(t, "/work", p.pathField.GetText())
}

func TestPanel_IconModesShowNameOnly(t *testing.T) {
	p := newTestPanel(t)
	require.NoError(t, p.ctrl.SetViewMode(view.ModeIcons))
	p.Render()
	assert.Equal(t, 1, p.table.GetColumnCount())
}

func TestPanel_KeyNavigation(t *testing.T) {
	p := newTestPanel(t)

	// Activating a directory row descends into it.
	p.onRowActivated(1, 0)
	assert.Equal(t, "/work/sub", p.ctrl.CurrentDirectory())

	handled := p.onTableKey(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	assert.Equal(t, (*tcell.EventKey)(nil), handled)
	assert.Equal(t, "/work", p.ctrl.CurrentDirectory())

	// Going up pushed /work, so back revisits sub and forward returns.
	p.onTableKey(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	assert.Equal(t, "/work/sub", p.ctrl.CurrentDirectory())

	p.onTableKey(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	assert.Equal(t, "/work", p.ctrl.CurrentDirectory())

	// Unhandled keys pass through to the table.
	event := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	assert.Equal(t, event, p.onTableKey(event))
}

func TestPanel_HistoryStepWithNothingToDo(t *testing.T) {
	p := newTestPanel(t)
	p.historyStep(p.ctrl.NavigateBack)
	assert.True(t, strings.Contains(statusText(p), "nothing to go to"))
	assert.Equal(t, "/work", p.ctrl.CurrentDirectory())
}

func TestPanel_DirChangedHook(t *testing.T) {
	var changed []string
	p := newTestPanel(t, OnDirChanged(func(dir string) {
		changed = append(changed, dir)
	}))
	p.onRowActivated(1, 0)
	assert.Equal(t, []string{"/work/sub"}, changed)
}

func TestPanel_CopyCurrentPath(t *testing.T) {
	originalWrite := clipboardWriteAll
	defer func() {
		clipboardWriteAll = originalWrite
	}()
	var copied string
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}

	p := newTestPanel(t)
	p.copyCurrentPath()
	assert.Equal(t, "/work/sub", copied) // first row is selected after render
	assert.True(t, strings.Contains(statusText(p), "copied"))
}

func TestPanel_PastePath(t *testing.T) {
	originalRead := clipboardReadAll
	defer func() {
		clipboardReadAll = originalRead
	}()

	t.Run("navigates_to_clipboard_path", func(t *testing.T) {
		clipboardReadAll = func() (string, error) {
			return " /work/sub \n", nil
		}
		p := newTestPanel(t)
		p.pastePath()
		assert.Equal(t, "/work/sub", p.ctrl.CurrentDirectory())
	})

	t.Run("empty_clipboard", func(t *testing.T) {
		clipboardReadAll = func() (string, error) {
			return "  ", nil
		}
		p := newTestPanel(t)
		p.pastePath()
		assert.True(t, strings.Contains(statusText(p), "clipboard is empty"))
		assert.Equal(t, "/work", p.ctrl.CurrentDirectory())
	})

	t.Run("clipboard_error", func(t *testing.T) {
		clipboardReadAll = func() (string, error) {
			return "", errors.New("no clipboard")
		}
		p := newTestPanel(t)
		p.pastePath()
		assert.True(t, strings.Contains(statusText(p), "failed to paste"))
	})
}

func TestPanel_OpenEntry(t *testing.T) {
	originalOpen := openRun
	defer func() {
		openRun = originalOpen
	}()

	t.Run("hands_file_to_opener", func(t *testing.T) {
		var opened string
		openRun = func(path string) error {
			opened = path
			return nil
		}
		p := newTestPanel(t)
		p.openEntry("a.txt")
		assert.Equal(t, "/work/a.txt", opened)
		assert.True(t, strings.Contains(statusText(p), "opened: a.txt"))
	})

	t.Run("opener_failure_reported", func(t *testing.T) {
		openRun = func(string) error {
			return errors.New("no handler")
		}
		p := newTestPanel(t)
		p.openEntry("a.txt")
		assert.True(t, strings.Contains(statusText(p), "failed to open"))
	})
}

func TestColumnTitle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Name", columnTitle(view.ColumnName))
	assert.Equal(t, "Modified", columnTitle(view.ColumnDateModified))
	assert.Equal(t, "Created", columnTitle(view.ColumnDateCreated))
	assert.Equal(t, "owner", columnTitle(view.Column("owner")))
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", formatTimestamp(time.Time{}))

	old := time.Date(2023, 4, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-04-05", formatTimestamp(old))

	recent := time.Now().Add(-time.Hour)
	assert.Equal(t, recent.Format("15:04:05"), formatTimestamp(recent))
}
