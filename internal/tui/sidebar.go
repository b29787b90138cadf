package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bookchat/internal/api"
)

// SidebarModel manages the saved-session list pane.
type SidebarModel struct {
	Sessions []api.Session
	Cursor   int
	Visible  bool
	Width    int
	Height   int
	Styles   Styles

	// ActiveID is the session currently open in the chat pane.
	ActiveID string

	// Rename state. While renaming, the selected row shows a text input.
	Renaming    bool
	renameInput textinput.Model
	renameID    string

	// ConfirmingDelete marks a pending delete awaiting a second keypress.
	ConfirmingDelete bool
}

// NewSidebarModel creates the session list pane.
func NewSidebarModel(styles Styles) SidebarModel {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Prompt = ""
	return SidebarModel{
		Styles:      styles,
		Visible:     true,
		renameInput: ti,
	}
}

// SetSize updates the pane dimensions
func (s *SidebarModel) SetSize(width, height int) {
	s.Width = width
	s.Height = height
	s.renameInput.Width = width - 4
}

// SetSessions replaces the list, clamping the cursor into range.
func (s *SidebarModel) SetSessions(sessions []api.Session) {
	s.Sessions = sessions
	if s.Cursor >= len(sessions) {
		s.Cursor = len(sessions) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// Selected returns the session under the cursor.
func (s *SidebarModel) Selected() (api.Session, bool) {
	if len(s.Sessions) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Sessions) {
		return api.Session{}, false
	}
	return s.Sessions[s.Cursor], true
}

// MoveUp moves the cursor up one row.
func (s *SidebarModel) MoveUp() {
	s.ConfirmingDelete = false
	if s.Cursor > 0 {
		s.Cursor--
	}
}

// MoveDown moves the cursor down one row.
func (s *SidebarModel) MoveDown() {
	s.ConfirmingDelete = false
	if s.Cursor < len(s.Sessions)-1 {
		s.Cursor++
	}
}

// StartRename opens the inline rename input prefilled with the current title.
func (s *SidebarModel) StartRename() bool {
	sess, ok := s.Selected()
	if !ok {
		return false
	}
	s.Renaming = true
	s.renameID = sess.ID
	s.renameInput.SetValue(sess.Title)
	s.renameInput.CursorEnd()
	s.renameInput.Focus()
	return true
}

// RenameTarget returns the id of the session being renamed.
func (s *SidebarModel) RenameTarget() string {
	return s.renameID
}

// RenameValue returns the current rename input text.
func (s *SidebarModel) RenameValue() string {
	return s.renameInput.Value()
}

// CancelRename closes the rename input without submitting.
func (s *SidebarModel) CancelRename() {
	s.Renaming = false
	s.renameID = ""
	s.renameInput.Blur()
	s.renameInput.SetValue("")
}

// UpdateRenameInput forwards key events to the rename input.
func (s *SidebarModel) UpdateRenameInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.renameInput, cmd = s.renameInput.Update(msg)
	return cmd
}

// ApplyRename updates the local title after the server accepted the rename.
func (s *SidebarModel) ApplyRename(id, newTitle string) {
	for i := range s.Sessions {
		if s.Sessions[i].ID == id {
			s.Sessions[i].Title = newTitle
			return
		}
	}
}

// RemoveSession drops a session from the local list.
func (s *SidebarModel) RemoveSession(id string) {
	for i := range s.Sessions {
		if s.Sessions[i].ID == id {
			s.Sessions = append(s.Sessions[:i], s.Sessions[i+1:]...)
			break
		}
	}
	if s.Cursor >= len(s.Sessions) && s.Cursor > 0 {
		s.Cursor--
	}
}

// View renders the session list pane.
func (s SidebarModel) View() string {
	if !s.Visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(s.Styles.SidebarTitle.Render("Conversations"))
	sb.WriteString("\n")

	if len(s.Sessions) == 0 {
		sb.WriteString(s.Styles.Muted.Render("No saved chats yet."))
		sb.WriteString("\n")
	}

	maxTitle := s.Width - 6
	if maxTitle < 8 {
		maxTitle = 8
	}

	for i, sess := range s.Sessions {
		if s.Renaming && sess.ID == s.renameID {
			sb.WriteString("> " + s.renameInput.View())
			sb.WriteString("\n")
			continue
		}

		title := sess.Title
		if title == "" {
			title = "(untitled)"
		}
		// Truncate on runes; titles come from user text and byte slicing
		// would split multi-byte characters.
		if runes := []rune(title); len(runes) > maxTitle {
			title = string(runes[:maxTitle-1]) + "…"
		}

		marker := "  "
		if sess.ID == s.ActiveID {
			marker = "* "
		}
		line := marker + title

		switch {
		case i == s.Cursor && s.ConfirmingDelete:
			sb.WriteString(s.Styles.NoticeWarning.Render(line + "  delete? (y/n)"))
		case i == s.Cursor:
			sb.WriteString(s.Styles.SessionSelected.Render(line))
		case sess.ID == s.ActiveID:
			sb.WriteString(s.Styles.SessionActive.Render(line))
		default:
			sb.WriteString(s.Styles.SessionItem.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.Styles.Muted.Render(fmt.Sprintf("%d saved", len(s.Sessions))))

	return s.Styles.SidebarBorder.
		Width(s.Width).
		Height(s.Height).
		Render(sb.String())
}
