// Package filepanel is the tview shell over the explorer core: a path
// field, the listing table and a status line. It translates key and
// button intents into single synchronous controller calls and paints
// the results; all navigation semantics live in pkg/explorer.
package filepanel

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/filepanel/filepanel/pkg/explorer"
	"github.com/filepanel/filepanel/pkg/explorer/filter"
	"github.com/filepanel/filepanel/pkg/explorer/view"
	"github.com/filepanel/filepanel/pkg/files"
	"github.com/filepanel/filepanel/pkg/fsutils"
)

// filterDebounce delays glob re-evaluation while the user is typing.
// Debouncing is the shell's job; the core relists synchronously.
const filterDebounce = 250 * time.Millisecond

type Panel struct {
	*tview.Flex

	app  *tview.Application
	ctrl *explorer.Controller

	pathField *tview.InputField
	table     *tview.Table
	status    *tview.TextView

	filterTimer *time.Timer

	// onDirChanged is invoked after every committed directory change,
	// e.g. to re-arm the directory watcher.
	onDirChanged func(dir string)
}

type Option func(*Panel)

// OnDirChanged registers a callback fired after each committed
// directory change.
func OnDirChanged(f func(dir string)) Option {
	return func(p *Panel) {
		p.onDirChanged = f
	}
}

func New(app *tview.Application, ctrl *explorer.Controller, options ...Option) *Panel {
	p := &Panel{
		app:  app,
		ctrl: ctrl,
	}
	for _, option := range options {
		option(p)
	}

	p.pathField = tview.NewInputField().
		SetLabel(" Path: ").
		SetText(ctrl.CurrentDirectory())
	p.pathField.SetDoneFunc(p.onPathSubmitted)
	p.pathField.SetChangedFunc(p.onPathEdited)

	p.table = tview.NewTable()
	p.table.SetSelectable(true, false)
	p.table.SetFixed(1, 0)
	p.table.SetSelectedFunc(p.onRowActivated)
	p.table.SetInputCapture(p.onTableKey)

	p.status = tview.NewTextView()

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow)
	p.AddItem(p.pathField, 1, 0, false)
	p.AddItem(p.table, 0, 1, true)
	p.AddItem(p.status, 1, 0, false)

	p.Render()
	return p
}

// Render repaints the table and status line from the controller state.
func (p *Panel) Render() {
	listing, err := p.ctrl.Listing()
	if err != nil {
		p.showError(err)
		return
	}

	columns := p.visibleColumns()
	widths := view.DefaultColumnWidths(p.ctrl.ViewMode())

	p.table.Clear()
	for col, column := range columns {
		header := tview.NewTableCell(columnTitle(column)).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false)
		if column == view.ColumnName {
			header.SetExpansion(1)
		} else {
			header.SetAlign(tview.AlignRight)
		}
		p.table.SetCell(0, col, header)
	}
	for row, entry := range listing.Entries {
		for col, column := range columns {
			cell := tview.NewTableCell(p.cellText(entry, column))
			if column == view.ColumnName {
				cell.SetExpansion(1)
			} else {
				cell.SetAlign(tview.AlignRight)
			}
			if width, ok := widths[column]; ok {
				cell.SetMaxWidth(width)
			}
			if entry.IsDir {
				cell.SetTextColor(tcell.ColorLightBlue)
			}
			p.table.SetCell(row+1, col, cell)
		}
	}
	if len(listing.Entries) > 0 {
		p.table.Select(1, 0)
	}
	p.table.ScrollToBeginning()

	p.pathField.SetText(p.currentInputText())
	p.showStatus(fmt.Sprintf("%d items", listing.Count))
}

// visibleColumns narrows the column set for the icon-oriented modes,
// which present names only.
func (p *Panel) visibleColumns() []view.Column {
	switch p.ctrl.ViewMode() {
	case view.ModeIcons, view.ModeGallery:
		return []view.Column{view.ColumnName}
	}
	snapshot := p.ctrl.ViewState()
	columns := make([]view.Column, 0, len(snapshot.VisibleColumns))
	for _, name := range snapshot.VisibleColumns {
		columns = append(columns, view.Column(name))
	}
	return columns
}

func (p *Panel) currentInputText() string {
	if pattern := p.ctrl.FilterPattern(); pattern != "" {
		return pattern
	}
	return p.ctrl.CurrentDirectory()
}

func (p *Panel) showStatus(message string) {
	dir := p.ctrl.CurrentDirectory()
	line := fmt.Sprintf(" %s  |  %s:%s", message, p.ctrl.RootTitle(), dir)
	if pattern := p.ctrl.FilterPattern(); pattern != "" {
		line += fmt.Sprintf("  |  filter: %s", pattern)
	}
	if p.ctrl.ShowHidden() {
		line += "  |  hidden shown"
	}
	p.status.SetText(line)
}

func (p *Panel) showError(err error) {
	p.status.SetText(fmt.Sprintf(" error: %v", err))
}

func (p *Panel) dirChanged() {
	if p.onDirChanged != nil {
		p.onDirChanged(p.ctrl.CurrentDirectory())
	}
}

func (p *Panel) onPathSubmitted(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	p.stopFilterTimer()
	input := p.pathField.GetText()
	wasGlob := filter.IsGlobPattern(input)
	if err := p.ctrl.NavigateTo(input); err != nil {
		p.showError(err)
		return
	}
	p.Render()
	if !wasGlob {
		p.dirChanged()
		p.app.SetFocus(p.table)
	}
}

// onPathEdited re-applies glob filters while typing, after a short
// debounce. Non-glob edits wait for Enter.
func (p *Panel) onPathEdited(text string) {
	p.stopFilterTimer()
	if !filter.IsGlobPattern(text) {
		if text == "" && p.ctrl.FilterPattern() != "" {
			p.applyFilter("")
		}
		return
	}
	p.filterTimer = time.AfterFunc(filterDebounce, func() {
		p.app.QueueUpdateDraw(func() {
			p.applyFilter(text)
		})
	})
}

func (p *Panel) applyFilter(pattern string) {
	if err := p.ctrl.SetFilterPattern(pattern); err != nil {
		p.showError(err)
		return
	}
	p.renderKeepInput()
}

// renderKeepInput repaints without resetting the path field, so typing
// in the filter is not interrupted.
func (p *Panel) renderKeepInput() {
	text := p.pathField.GetText()
	p.Render()
	p.pathField.SetText(text)
}

func (p *Panel) stopFilterTimer() {
	if p.filterTimer != nil {
		p.filterTimer.Stop()
		p.filterTimer = nil
	}
}

func (p *Panel) onRowActivated(row, column int) {
	listing, err := p.ctrl.Listing()
	if err != nil {
		p.showError(err)
		return
	}
	index := row - 1
	if index < 0 || index >= len(listing.Entries) {
		return
	}
	entry := listing.Entries[index]
	if entry.IsDir {
		p.navigate(func() error {
			return p.ctrl.NavigateTo(entry.Name)
		})
		return
	}
	p.openEntry(entry.Name)
}

// navigate runs a controller navigation, repaints and fires the
// directory-changed hook; errors land in the status line with the
// prior listing retained.
func (p *Panel) navigate(op func() error) {
	if err := op(); err != nil {
		p.showError(err)
		return
	}
	p.Render()
	p.dirChanged()
}

func (p *Panel) onTableKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.navigate(p.ctrl.NavigateUp)
		return nil
	case tcell.KeyF5:
		if err := p.ctrl.Refresh(); err != nil {
			p.showError(err)
		} else {
			p.Render()
		}
		return nil
	case tcell.KeyRune:
		// fall through to rune handling below
	default:
		return event
	}

	switch event.Rune() {
	case 'u':
		p.navigate(p.ctrl.NavigateUp)
	case 'b':
		p.historyStep(p.ctrl.NavigateBack)
	case 'f':
		p.historyStep(p.ctrl.NavigateForward)
	case 'r':
		if err := p.ctrl.Refresh(); err != nil {
			p.showError(err)
		} else {
			p.Render()
		}
	case '.':
		p.navigateKeepDir(p.ctrl.ToggleHidden)
	case '/':
		p.app.SetFocus(p.pathField)
	case '~':
		p.navigate(func() error {
			return p.ctrl.NavigateToShortcut(explorer.ShortcutHome)
		})
	case '@':
		p.navigate(func() error {
			return p.ctrl.NavigateToShortcut(explorer.ShortcutLaunch)
		})
	case '|':
		p.navigate(func() error {
			return p.ctrl.NavigateToShortcut(explorer.ShortcutRoot)
		})
	case '1':
		p.navigateKeepDir(func() error { return p.ctrl.SetViewMode(view.ModeList) })
	case '2':
		p.navigateKeepDir(func() error { return p.ctrl.SetViewMode(view.ModeIcons) })
	case '3':
		p.navigateKeepDir(func() error { return p.ctrl.SetViewMode(view.ModeColumns) })
	case '4':
		p.navigateKeepDir(func() error { return p.ctrl.SetViewMode(view.ModeGallery) })
	case 's':
		p.toggleSortDirection()
	case 'S':
		p.cycleSortColumn()
	case 'y':
		p.copyCurrentPath()
	case 'p':
		p.pastePath()
	default:
		return event
	}
	return nil
}

// navigateKeepDir is for view/filter changes: repaint, no history or
// watcher consequences.
func (p *Panel) navigateKeepDir(op func() error) {
	if err := op(); err != nil {
		p.showError(err)
		return
	}
	p.Render()
}

// historyStep handles back/forward, where "nothing to do" is benign.
func (p *Panel) historyStep(op func() (bool, error)) {
	moved, err := op()
	if err != nil {
		p.showError(err)
		return
	}
	if !moved {
		p.showStatus("nothing to go to")
		return
	}
	p.Render()
	p.dirChanged()
}

func (p *Panel) toggleSortDirection() {
	snapshot := p.ctrl.ViewState()
	direction := view.Ascending
	if view.Direction(snapshot.SortDirection) == view.Ascending {
		direction = view.Descending
	}
	p.navigateKeepDir(func() error {
		return p.ctrl.SetSort(view.Column(snapshot.SortColumn), direction)
	})
}

// cycleSortColumn advances the sort key through the visible columns.
func (p *Panel) cycleSortColumn() {
	snapshot := p.ctrl.ViewState()
	columns := snapshot.VisibleColumns
	if len(columns) == 0 {
		return
	}
	next := columns[0]
	for i, name := range columns {
		if name == snapshot.SortColumn {
			next = columns[(i+1)%len(columns)]
			break
		}
	}
	p.navigateKeepDir(func() error {
		return p.ctrl.SetSort(view.Column(next), view.Direction(snapshot.SortDirection))
	})
}

func columnTitle(column view.Column) string {
	switch column {
	case view.ColumnName:
		return "Name"
	case view.ColumnSize:
		return "Size"
	case view.ColumnKind:
		return "Kind"
	case view.ColumnDateModified:
		return "Modified"
	case view.ColumnDateCreated:
		return "Created"
	}
	return string(column)
}

func (p *Panel) cellText(entry files.Entry, column view.Column) string {
	switch column {
	case view.ColumnName:
		if entry.IsDir {
			return "📁" + entry.Name
		}
		return " " + entry.Name
	case view.ColumnSize:
		if entry.IsDir {
			return ""
		}
		return fsutils.GetSizeShortText(entry.Size)
	case view.ColumnKind:
		return entry.Kind
	case view.ColumnDateModified:
		return formatTimestamp(entry.Modified)
	case view.ColumnDateCreated:
		return formatTimestamp(entry.Created)
	}
	return ""
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if time.Since(t) < 24*time.Hour {
		return t.Format("15:04:05")
	}
	return t.Format("2006-01-02")
}
