package filepanel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"
)

var clipboardWriteAll = clipboard.WriteAll
var clipboardReadAll = clipboard.ReadAll
var openRun = open.Run

// selectedPath returns the full path of the selected row, or the
// current directory when nothing is selected.
func (p *Panel) selectedPath() string {
	listing, err := p.ctrl.Listing()
	if err != nil {
		return p.ctrl.CurrentDirectory()
	}
	row, _ := p.table.GetSelection()
	index := row - 1
	if index < 0 || index >= len(listing.Entries) {
		return p.ctrl.CurrentDirectory()
	}
	return filepath.Join(p.ctrl.CurrentDirectory(), listing.Entries[index].Name)
}

func (p *Panel) copyCurrentPath() {
	path := p.selectedPath()
	if err := clipboardWriteAll(path); err != nil {
		p.showError(fmt.Errorf("failed to copy: %w", err))
		return
	}
	p.showStatus(fmt.Sprintf("copied: %s", path))
}

// pastePath navigates to the path held by the clipboard.
func (p *Panel) pastePath() {
	text, err := clipboardReadAll()
	if err != nil {
		p.showError(fmt.Errorf("failed to paste: %w", err))
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		p.showStatus("clipboard is empty")
		return
	}
	p.navigate(func() error {
		return p.ctrl.NavigateTo(text)
	})
}

// openEntry hands a file to the OS default opener.
func (p *Panel) openEntry(name string) {
	path := filepath.Join(p.ctrl.CurrentDirectory(), name)
	if err := openRun(path); err != nil {
		p.showError(fmt.Errorf("failed to open %s: %w", name, err))
		return
	}
	p.showStatus(fmt.Sprintf("opened: %s", name))
}
