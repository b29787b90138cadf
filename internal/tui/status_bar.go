package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel renders the bottom status line.
type StatusBarModel struct {
	Styles    Styles
	Width     int
	ServerURL string

	// SessionID of the open chat, empty for a fresh chat.
	SessionID string

	// Awaiting is true while a reply is in flight; sends are ignored then.
	Awaiting bool
}

// NewStatusBarModel creates the status bar.
func NewStatusBarModel(styles Styles, serverURL string) StatusBarModel {
	return StatusBarModel{Styles: styles, ServerURL: serverURL}
}

// View renders the status bar.
func (s StatusBarModel) View() string {
	left := s.ServerURL
	if s.SessionID != "" {
		id := s.SessionID
		if len(id) > 8 {
			id = id[:8]
		}
		left += " · " + id
	} else {
		left += " · new chat"
	}

	var middle string
	if s.Awaiting {
		middle = s.Styles.StatusWaiting.Render("waiting for reply…")
	}

	right := s.Styles.Muted.Render("^n new · ^b list · tab focus · ^c quit")

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	half := gap / 2

	line := left + strings.Repeat(" ", half) + middle + strings.Repeat(" ", gap-half) + right
	return s.Styles.StatusBar.Width(s.Width).Render(line)
}
