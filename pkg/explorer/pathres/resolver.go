// Package pathres turns user-entered path strings into canonical
// absolute directory paths: shortcut tokens, ~ and environment-variable
// expansion, relative resolution against a base directory.
package pathres

import (
	"path/filepath"
	"regexp"
	"strings"
)

// LaunchToken navigates to the directory the process was started from.
const LaunchToken = "@"

// FS is the subset of the filesystem surface resolution needs.
type FS interface {
	Exists(path string) bool
	IsDirectory(path string) bool
}

type Resolver struct {
	env       Env
	fs        FS
	launchDir string
}

// New creates a resolver. launchDir is the canonical directory captured
// at process start; it backs the LaunchToken shortcut and never changes.
func New(env Env, fs FS, launchDir string) *Resolver {
	return &Resolver{env: env, fs: fs, launchDir: launchDir}
}

var unixVarRe = regexp.MustCompile(`\$\{?([A-Za-z_][A-Za-z0-9_]*)\}?`)
var winVarRe = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// Resolve expands input and canonicalizes it against baseDir. The result
// always names an existing directory; any failure is a *ResolutionError.
// Resolve never touches filesystem state.
func (r *Resolver) Resolve(input, baseDir string) (string, error) {
	raw := input
	input = strings.TrimSpace(input)

	switch input {
	case "", ".":
		return filepath.Clean(baseDir), nil
	case "..":
		return filepath.Dir(filepath.Clean(baseDir)), nil
	case "/":
		return "/", nil
	case LaunchToken:
		return r.launchDir, nil
	}

	expanded, err := r.expandVars(raw, input)
	if err != nil {
		return "", err
	}
	expanded, err = r.expandHome(raw, expanded)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(baseDir, expanded)
	}
	resolved := filepath.Clean(expanded)

	if !r.fs.Exists(resolved) {
		return "", newResolutionError(raw, ErrNotFound, resolved)
	}
	if !r.fs.IsDirectory(resolved) {
		return "", newResolutionError(raw, ErrNotADirectory, resolved)
	}
	return resolved, nil
}

func (r *Resolver) expandHome(raw, p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := r.env.Home()
	if err != nil {
		return "", newResolutionError(raw, ErrNotFound, "home directory unavailable")
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~/")), nil
}

// expandVars substitutes $VAR, ${VAR} and %VAR% tokens. A reference to
// an undefined variable fails rather than expanding to an empty string.
func (r *Resolver) expandVars(raw, p string) (string, error) {
	var missing string
	expand := func(re *regexp.Regexp, trim func(string) string) {
		p = re.ReplaceAllStringFunc(p, func(token string) string {
			name := trim(token)
			value, ok := r.env.Get(name)
			if !ok {
				if missing == "" {
					missing = name
				}
				return token
			}
			return value
		})
	}
	expand(unixVarRe, func(token string) string {
		name := strings.TrimPrefix(token, "$")
		name = strings.TrimPrefix(name, "{")
		return strings.TrimSuffix(name, "}")
	})
	expand(winVarRe, func(token string) string {
		return strings.Trim(token, "%")
	})
	if missing != "" {
		return "", newResolutionError(raw, ErrUnknownVariable, missing)
	}
	return p, nil
}
