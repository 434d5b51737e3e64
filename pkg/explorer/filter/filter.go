// Package filter narrows a directory listing by hidden-file visibility
// and an optional glob pattern over entry names.
package filter

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// IsGlobPattern classifies a raw path-editor input: anything carrying a
// wildcard is a filter pattern, everything else is a navigation target.
func IsGlobPattern(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

type Filter struct {
	showHidden bool
	foldCase   bool
	pattern    string
	matcher    glob.Glob
}

type Option func(*Filter)

// FoldCase makes pattern matching case-insensitive. The default follows
// the conventional case-sensitive behavior of unix filesystems.
func FoldCase() Option {
	return func(f *Filter) {
		f.foldCase = true
	}
}

func New(showHidden bool, options ...Option) *Filter {
	f := &Filter{showHidden: showHidden}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *Filter) ShowHidden() bool {
	return f.showHidden
}

func (f *Filter) SetShowHidden(show bool) {
	f.showHidden = show
}

func (f *Filter) Pattern() string {
	return f.pattern
}

// SetPattern compiles pattern and installs it; an empty pattern clears
// the filter. The previous pattern stays active when compilation fails.
func (f *Filter) SetPattern(pattern string) error {
	if pattern == "" {
		f.pattern = ""
		f.matcher = nil
		return nil
	}
	compiled := pattern
	if f.foldCase {
		compiled = strings.ToLower(pattern)
	}
	matcher, err := glob.Compile(compiled)
	if err != nil {
		return fmt.Errorf("bad filter pattern %q: %w", pattern, err)
	}
	f.pattern = pattern
	f.matcher = matcher
	return nil
}

// Matches reports whether an entry stays visible. Hidden entries are
// rejected outright when hidden files are off, regardless of pattern.
func (f *Filter) Matches(entryName string, isHidden bool) bool {
	if isHidden && !f.showHidden {
		return false
	}
	if f.matcher == nil {
		return true
	}
	if f.foldCase {
		entryName = strings.ToLower(entryName)
	}
	return f.matcher.Match(entryName)
}
