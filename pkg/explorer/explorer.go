// Package explorer orchestrates directory navigation for a single
// file-manager panel: it owns the current directory, the browsing
// history, the directory filter and the view state, and produces the
// ordered listing the rendering layer paints.
//
// A controller is a single logical actor: callers invoke its methods
// serially from one goroutine. Each navigation or view-change call is
// atomic — it either fully commits (state updated, persistence written)
// or leaves the prior state untouched.
package explorer

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/filepanel/filepanel/pkg/explorer/filter"
	"github.com/filepanel/filepanel/pkg/explorer/fpstate"
	"github.com/filepanel/filepanel/pkg/explorer/history"
	"github.com/filepanel/filepanel/pkg/explorer/pathres"
	"github.com/filepanel/filepanel/pkg/explorer/view"
	"github.com/filepanel/filepanel/pkg/files"
)

// Shortcut is a symbolic navigation target resolved without a literal
// path lookup.
type Shortcut string

const (
	ShortcutRoot   Shortcut = "root"
	ShortcutHome   Shortcut = "home"
	ShortcutLaunch Shortcut = "launch"
)

type Controller struct {
	fs       files.Store
	resolver *pathres.Resolver
	persist  fpstate.Store

	history *history.History
	view    *view.State
	filter  *filter.Filter

	currentDir string
	launchDir  string

	collator *collate.Collator

	listing      Listing
	listingValid bool
}

type Option func(*options)

type options struct {
	historySize int
	showHidden  bool
	foldCase    bool
}

// WithHistorySize bounds the navigation history.
func WithHistorySize(n int) Option {
	return func(o *options) {
		o.historySize = n
	}
}

// WithShowHidden sets the initial hidden-file visibility, overridden by
// persisted state when present.
func WithShowHidden(show bool) Option {
	return func(o *options) {
		o.showHidden = show
	}
}

// WithCaseInsensitiveSort orders and matches names without regard to
// case, for hosts whose filesystem convention folds case.
func WithCaseInsensitiveSort() Option {
	return func(o *options) {
		o.foldCase = true
	}
}

// New builds a controller rooted at launchDir, restoring any persisted
// state. launchDir is captured once and backs the launch-directory
// shortcut for the controller's lifetime. Restore failures are logged
// and fall back to defaults; New only fails when the initial directory
// cannot be listed.
func New(fs files.Store, persist fpstate.Store, env pathres.Env, launchDir string, opts ...Option) (*Controller, error) {
	o := options{historySize: history.DefaultMaxSize}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		fs:        fs,
		resolver:  pathres.New(env, fs, launchDir),
		persist:   persist,
		history:   history.New(o.historySize),
		view:      view.NewState(),
		launchDir: launchDir,
	}
	filterOptions := []filter.Option{}
	if o.foldCase {
		filterOptions = append(filterOptions, filter.FoldCase())
		c.collator = collate.New(language.Und, collate.IgnoreCase)
	}
	c.filter = filter.New(o.showHidden, filterOptions...)

	c.restorePersisted()

	if c.currentDir == "" {
		c.currentDir = launchDir
	}
	if _, ok := c.history.Current(); !ok {
		c.history.Push(c.currentDir)
	}
	if err := c.relist(); err != nil {
		// The persisted directory may be gone; fall back to launchDir.
		c.currentDir = launchDir
		c.history = history.New(o.historySize)
		c.history.Push(launchDir)
		if err := c.relist(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// restorePersisted loads lastDirectory, history, viewState and the
// hidden-file flag. Malformed or unreadable values behave as absent.
func (c *Controller) restorePersisted() {
	var lastDir string
	if ok, err := c.persist.Get(fpstate.KeyLastDirectory, &lastDir); err != nil {
		logrus.WithError(err).Warn("failed to read persisted directory")
	} else if ok && c.fs.IsDirectory(lastDir) {
		c.currentDir = lastDir
	}

	var snapshot history.Snapshot
	if ok, err := c.persist.Get(fpstate.KeyHistory, &snapshot); err != nil {
		logrus.WithError(err).Warn("failed to read persisted history")
	} else if ok {
		if !c.history.Restore(snapshot) {
			logrus.Warn("discarding malformed persisted history")
		}
	}
	if current, ok := c.history.Current(); ok && c.currentDir == "" && c.fs.IsDirectory(current) {
		c.currentDir = current
	}

	var viewSnapshot view.Snapshot
	if ok, err := c.persist.Get(fpstate.KeyViewState, &viewSnapshot); err != nil {
		logrus.WithError(err).Warn("failed to read persisted view state")
	} else if ok {
		if !c.view.Restore(viewSnapshot) {
			logrus.Warn("discarding malformed persisted view state")
		}
	}

	var filterState fpstate.FilterState
	if ok, err := c.persist.Get(fpstate.KeyFilter, &filterState); err != nil {
		logrus.WithError(err).Warn("failed to read persisted filter state")
	} else if ok {
		c.filter.SetShowHidden(filterState.ShowHidden)
	}
}

// persistAll writes every persisted key. Failures are logged and never
// surface: the in-memory state remains authoritative for the session.
func (c *Controller) persistAll() {
	if err := c.persist.Set(fpstate.KeyLastDirectory, c.currentDir); err != nil {
		logrus.WithError(err).Warn("failed to persist current directory")
	}
	if err := c.persist.Set(fpstate.KeyHistory, c.history.Snapshot()); err != nil {
		logrus.WithError(err).Warn("failed to persist history")
	}
	if err := c.persist.Set(fpstate.KeyViewState, c.view.Snapshot()); err != nil {
		logrus.WithError(err).Warn("failed to persist view state")
	}
	filterState := fpstate.FilterState{ShowHidden: c.filter.ShowHidden()}
	if err := c.persist.Set(fpstate.KeyFilter, filterState); err != nil {
		logrus.WithError(err).Warn("failed to persist filter state")
	}
}

// relist rebuilds the cached listing from the live filesystem.
func (c *Controller) relist() error {
	listing, err := c.list(c.currentDir)
	if err != nil {
		return err
	}
	c.listing = listing
	c.listingValid = true
	return nil
}

// list enumerates, filters and sorts dir without touching controller
// state, so callers can commit only after it succeeds.
func (c *Controller) list(dir string) (Listing, error) {
	entries, err := c.fs.ListEntries(context.Background(), dir)
	if err != nil {
		return Listing{}, err
	}
	visible := make([]files.Entry, 0, len(entries))
	for _, entry := range entries {
		if c.filter.Matches(entry.Name, entry.IsHidden) {
			visible = append(visible, entry)
		}
	}
	sortEntries(visible, c.view, c.collator)
	return Listing{Entries: visible, Count: len(visible)}, nil
}

// NavigateTo handles a raw path-editor input. Wildcard inputs install a
// filter over the current listing; anything else resolves and commits a
// directory change. On a resolution or listing error the controller
// keeps its prior state.
func (c *Controller) NavigateTo(input string) error {
	if filter.IsGlobPattern(input) {
		previous := c.filter.Pattern()
		if err := c.filter.SetPattern(input); err != nil {
			return err
		}
		if err := c.relist(); err != nil {
			_ = c.filter.SetPattern(previous)
			return err
		}
		return nil
	}

	resolved, err := c.resolver.Resolve(input, c.currentDir)
	if err != nil {
		return err
	}
	return c.commitDir(resolved)
}

// commitDir makes dir current: listing first, then history push, filter
// reset and persistence.
func (c *Controller) commitDir(dir string) error {
	previousPattern := c.filter.Pattern()
	_ = c.filter.SetPattern("")
	listing, err := c.list(dir)
	if err != nil {
		_ = c.filter.SetPattern(previousPattern)
		return err
	}
	c.currentDir = dir
	c.history.Push(dir)
	c.listing = listing
	c.listingValid = true
	c.persistAll()
	return nil
}

// NavigateBack moves one entry back in history. It reports false with a
// nil error when there is nothing to go back to.
func (c *Controller) NavigateBack() (bool, error) {
	return c.moveInHistory(c.history.Back, c.history.Forward)
}

// NavigateForward moves one entry forward in history. It reports false
// with a nil error when there is nothing to go forward to.
func (c *Controller) NavigateForward() (bool, error) {
	return c.moveInHistory(c.history.Forward, c.history.Back)
}

// moveInHistory steps the cursor and relists. History entries are
// pre-validated canonical paths, so resolution is bypassed; a listing
// failure undoes the step so the prior state is retained.
func (c *Controller) moveInHistory(move, undo func() (string, bool)) (bool, error) {
	dir, ok := move()
	if !ok {
		return false, nil
	}
	listing, err := c.list(dir)
	if err != nil {
		undo()
		return false, err
	}
	c.currentDir = dir
	c.listing = listing
	c.listingValid = true
	c.persistAll()
	return true, nil
}

// NavigateUp goes to the parent of the current directory.
func (c *Controller) NavigateUp() error {
	return c.NavigateTo("..")
}

// NavigateToShortcut jumps to a symbolic target.
func (c *Controller) NavigateToShortcut(kind Shortcut) error {
	switch kind {
	case ShortcutRoot:
		return c.NavigateTo("/")
	case ShortcutHome:
		return c.NavigateTo("~")
	case ShortcutLaunch:
		return c.NavigateTo(pathres.LaunchToken)
	}
	return nil
}

// Refresh drops the cached listing and re-reads the current directory,
// leaving history untouched.
func (c *Controller) Refresh() error {
	c.listingValid = false
	return c.relist()
}

// ToggleHidden flips hidden-file visibility and relists.
func (c *Controller) ToggleHidden() error {
	c.filter.SetShowHidden(!c.filter.ShowHidden())
	if err := c.relist(); err != nil {
		c.filter.SetShowHidden(!c.filter.ShowHidden())
		return err
	}
	c.persistAll()
	return nil
}

// SetViewMode switches the presentation mode.
func (c *Controller) SetViewMode(mode view.Mode) error {
	return c.changeView(func() {
		c.view.SetMode(mode)
	})
}

// SetColumns replaces the visible column set.
func (c *Controller) SetColumns(columns []view.Column) error {
	return c.changeView(func() {
		c.view.SetColumns(columns)
	})
}

// ToggleColumn flips a single column's visibility.
func (c *Controller) ToggleColumn(column view.Column) error {
	return c.changeView(func() {
		c.view.ToggleColumn(column)
	})
}

// SetSort selects the sort key and direction, making the key visible.
func (c *Controller) SetSort(column view.Column, direction view.Direction) error {
	return c.changeView(func() {
		c.view.SetSort(column, direction)
	})
}

// changeView applies a view mutation and relists; on failure the prior
// view state is restored so the call leaves no trace.
func (c *Controller) changeView(mutate func()) error {
	previous := c.view.Snapshot()
	mutate()
	if err := c.relist(); err != nil {
		c.view.Restore(previous)
		return err
	}
	c.persistAll()
	return nil
}

// SetFilterPattern installs a glob filter over the current listing
// without navigating. An empty pattern clears the filter.
func (c *Controller) SetFilterPattern(pattern string) error {
	previous := c.filter.Pattern()
	if err := c.filter.SetPattern(pattern); err != nil {
		return err
	}
	if err := c.relist(); err != nil {
		_ = c.filter.SetPattern(previous)
		return err
	}
	return nil
}

// CurrentDirectory returns the directory currently listed.
func (c *Controller) CurrentDirectory() string {
	return c.currentDir
}

// LaunchDirectory returns the directory captured at process start.
func (c *Controller) LaunchDirectory() string {
	return c.launchDir
}

// RootTitle names the filesystem root being browsed, e.g. the hostname
// for the local filesystem.
func (c *Controller) RootTitle() string {
	return c.fs.RootTitle()
}

// Listing returns the current ordered listing, re-reading the
// filesystem only when the cache was invalidated.
func (c *Controller) Listing() (Listing, error) {
	if !c.listingValid {
		if err := c.relist(); err != nil {
			return Listing{}, err
		}
	}
	return c.listing, nil
}

func (c *Controller) CanGoBack() bool {
	return c.history.CanGoBack()
}

func (c *Controller) CanGoForward() bool {
	return c.history.CanGoForward()
}

// ViewState returns a snapshot of the presentation state for rendering.
func (c *Controller) ViewState() view.Snapshot {
	return c.view.Snapshot()
}

// ViewMode returns the active view mode.
func (c *Controller) ViewMode() view.Mode {
	return c.view.Mode()
}

// FilterPattern returns the active session filter, empty when unset.
func (c *Controller) FilterPattern() string {
	return c.filter.Pattern()
}

// ShowHidden reports whether hidden entries are listed.
func (c *Controller) ShowHidden() bool {
	return c.filter.ShowHidden()
}
