package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// saveDelay is how long after a reply lands before the session is persisted.
// The pause batches the user/assistant pair into one save.
const saveDelay = 500 * time.Millisecond

type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// ModelConfig holds the configuration for creating the root TUI model
type ModelConfig struct {
	Backend       Backend
	ServerURL     string
	Lang          string
	AssistantName string
	// AutocompleteLimit caps completions per fetch; 0 means the default of 5.
	AutocompleteLimit int
	// Debounce is the autocomplete idle window; 0 means the default of 300ms.
	Debounce time.Duration
	// Renderer is the Lip Gloss renderer to use for styling. Over SSH, pass the
	// renderer from wishbubbletea.MakeRenderer so colors work correctly. If nil,
	// the default renderer (local terminal) is used.
	Renderer *lipgloss.Renderer
}

// Model is the root BubbleTea model
type Model struct {
	config  ModelConfig
	backend Backend
	styles  Styles

	// Sub-models
	sidebar   SidebarModel
	statusBar StatusBarModel
	notice    NoticeModel
	suggest   SuggestModel
	thread    ThreadModel
	input     textarea.Model

	// Chat state. sessionID is empty for a fresh chat until the first send
	// mints an id; awaiting is true while a reply is in flight.
	sessionID string
	awaiting  bool

	// loadSeq correlates session loads; a load finishing after the user
	// switched again is dropped.
	loadSeq int

	// lastInput detects textarea edits after each update.
	lastInput string

	// Global state
	width    int
	height   int
	focus    focusArea
	quitting bool
}

// NewModel creates the root TUI model
func NewModel(config ModelConfig) Model {
	r := config.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := NewStyles(r)

	ti := textarea.New()
	ti.Placeholder = "Ask for a book... (Enter to send, Alt+Enter for new line)"
	ti.ShowLineNumbers = false
	ti.SetHeight(3)
	ti.SetWidth(80)
	ti.Focus()
	ti.CharLimit = 4000
	ti.Cursor.Blink = false // SSH compatibility

	assistantName := config.AssistantName
	if assistantName == "" {
		assistantName = "BookBot"
	}

	return Model{
		config:    config,
		backend:   config.Backend,
		styles:    styles,
		sidebar:   NewSidebarModel(styles),
		statusBar: NewStatusBarModel(styles, config.ServerURL),
		notice:    NewNoticeModel(styles),
		suggest:   NewSuggestModel(styles, config.Debounce, config.AutocompleteLimit),
		thread:    NewThreadModel(styles, assistantName),
		input:     ti,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return fetchSessionsCmd(m.backend)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.quitting {
			return m, tea.Quit
		}
		if handled {
			return m, tea.Batch(cmds...)
		}
		// Unhandled keys go to the focused text widget.
		if m.sidebar.Renaming {
			cmds = append(cmds, m.sidebar.UpdateRenameInput(msg))
		} else if m.focus == focusInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
			if v := m.input.Value(); v != m.lastInput {
				m.lastInput = v
				cmds = append(cmds, m.suggest.InputChanged(v))
			}
		}

	case SessionListMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.notice.Notify(NoticeError, "Could not load chats: "+msg.Err.Error()))
			break
		}
		m.sidebar.SetSessions(msg.Sessions)

	case SessionLoadedMsg:
		if msg.Seq != m.loadSeq {
			break // user switched again before this load finished
		}
		if msg.Err != nil {
			// The open chat is untouched; switching is all or nothing.
			cmds = append(cmds, m.notice.Notify(NoticeError, "Could not open chat: "+msg.Err.Error()))
			break
		}
		m.sessionID = msg.SessionID
		m.sidebar.ActiveID = msg.SessionID
		m.statusBar.SessionID = msg.SessionID
		m.awaiting = false
		m.statusBar.Awaiting = false
		m.thread.StopThinking()
		m.thread.SetMessages(msg.Messages)
		m.suggest.Reset()

	case ChatReplyMsg:
		if msg.SessionID != m.sessionID {
			break // reply for a chat the user already left
		}
		m.awaiting = false
		m.statusBar.Awaiting = false
		m.thread.StopThinking()
		if msg.Err != nil {
			m.thread.Append(SenderBot, "Sorry, something went wrong while finding your book. Please try again.")
			cmds = append(cmds, m.notice.Notify(NoticeError, "Request failed: "+msg.Err.Error()))
			break
		}
		m.thread.Append(SenderBot, msg.Reply)
		cmds = append(cmds, persistTickCmd(saveDelay, m.sessionID))

	case PersistTickMsg:
		if msg.SessionID == m.sessionID && !m.awaiting && len(m.thread.Messages) > 0 {
			cmds = append(cmds, saveSessionCmd(m.backend, m.sessionID, m.thread.WireMessages()))
		}

	case SessionSavedMsg:
		// Saves are best effort, but failures still surface. The next reply
		// retries implicitly since the full transcript is sent each time.
		if msg.Err != nil {
			cmds = append(cmds, m.notice.Notify(NoticeError, "Could not save chat: "+msg.Err.Error()))
			break
		}
		cmds = append(cmds, fetchSessionsCmd(m.backend))

	case SessionRenamedMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.notice.Notify(NoticeError, "Rename failed: "+msg.Err.Error()))
			break
		}
		m.sidebar.ApplyRename(msg.SessionID, msg.NewTitle)
		cmds = append(cmds, m.notice.Notify(NoticeSuccess, "Chat renamed"))

	case SessionDeletedMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.notice.Notify(NoticeError, "Delete failed: "+msg.Err.Error()))
			break
		}
		m.sidebar.RemoveSession(msg.SessionID)
		if msg.SessionID == m.sessionID {
			m.startNewChat()
		}
		text := msg.Noti
		if text == "" {
			text = "Chat deleted"
		}
		cmds = append(cmds, m.notice.Notify(NoticeSuccess, text))

	case SuggestTickMsg:
		prefix, ok := m.suggest.TickElapsed(msg.Seq)
		if ok && m.sessionID != "" && !m.awaiting {
			cmds = append(cmds, autocompleteCmd(m.backend, msg.Seq, m.sessionID, prefix, m.suggest.Limit))
		}

	case SuggestResultMsg:
		m.suggest.ApplyResult(msg)

	case NoticeExpireMsg:
		m.notice.Expire(msg.Seq)

	case ThinkingTickMsg:
		if m.awaiting {
			m.thread.ThinkingTick()
			cmds = append(cmds, thinkingTickCmd())
		}

	default:
		// Mouse wheel and any other events scroll the thread.
		var cmd tea.Cmd
		m.thread.Viewport, cmd = m.thread.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes global key bindings. Returns handled=false when the
// key should fall through to the focused text widget.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	// Rename input owns most keys while open.
	if m.sidebar.Renaming {
		switch key {
		case "enter":
			return m.submitRename(), true
		case "esc":
			m.sidebar.CancelRename()
			return nil, true
		case "ctrl+c":
			m.quitting = true
			return nil, true
		}
		return nil, false
	}

	// Pending delete confirmation.
	if m.sidebar.ConfirmingDelete {
		switch key {
		case "y", "Y":
			m.sidebar.ConfirmingDelete = false
			if sess, ok := m.sidebar.Selected(); ok {
				return deleteSessionCmd(m.backend, sess.ID), true
			}
			return nil, true
		case "ctrl+c":
			m.quitting = true
			return nil, true
		default:
			m.sidebar.ConfirmingDelete = false
			return nil, true
		}
	}

	switch key {
	case "ctrl+c":
		m.quitting = true
		return nil, true

	case "ctrl+n":
		m.startNewChat()
		return nil, true

	case "ctrl+b":
		m.sidebar.Visible = !m.sidebar.Visible
		if !m.sidebar.Visible && m.focus == focusSidebar {
			m.focus = focusInput
			m.input.Focus()
		}
		m.updateLayout()
		return nil, true

	case "tab":
		if m.suggest.Visible() {
			m.acceptSuggestion()
			return nil, true
		}
		m.toggleFocus()
		return nil, true

	case "esc":
		if m.suggest.Visible() {
			m.suggest.Dismiss()
			return nil, true
		}
		if m.focus == focusSidebar {
			m.focus = focusInput
			m.input.Focus()
			return nil, true
		}
		return nil, true

	case "enter":
		if m.focus == focusSidebar {
			return m.openSelectedSession(), true
		}
		if m.suggest.Visible() && m.suggest.Engaged() {
			m.acceptSuggestion()
			return nil, true
		}
		return m.sendCurrentInput(), true

	case "alt+enter":
		if m.focus == focusInput {
			m.input.InsertString("\n")
			if v := m.input.Value(); v != m.lastInput {
				m.lastInput = v
				return m.suggest.InputChanged(v), true
			}
			return nil, true
		}
		return nil, true

	case "up":
		if m.suggest.Visible() {
			m.suggest.Prev()
			return nil, true
		}
		if m.focus == focusSidebar {
			m.sidebar.MoveUp()
			return nil, true
		}
		return nil, false

	case "down":
		if m.suggest.Visible() {
			m.suggest.Next()
			return nil, true
		}
		if m.focus == focusSidebar {
			m.sidebar.MoveDown()
			return nil, true
		}
		return nil, false

	case "pgup":
		m.thread.Viewport.HalfViewUp()
		return nil, true

	case "pgdown":
		m.thread.Viewport.HalfViewDown()
		return nil, true

	case "r":
		if m.focus == focusSidebar {
			m.sidebar.StartRename()
			return nil, true
		}
		return nil, false

	case "d":
		if m.focus == focusSidebar {
			if _, ok := m.sidebar.Selected(); ok {
				m.sidebar.ConfirmingDelete = true
			}
			return nil, true
		}
		return nil, false

	case "1", "2", "3":
		// Starter prompts, only from the welcome screen with an empty input.
		if m.focus == focusInput && len(m.thread.Messages) == 0 && strings.TrimSpace(m.input.Value()) == "" {
			idx := int(key[0] - '1')
			if idx < len(StarterPrompts) {
				return m.sendText(StarterPrompts[idx]), true
			}
		}
		return nil, false
	}

	return nil, false
}

// toggleFocus switches between the input and the sidebar.
func (m *Model) toggleFocus() {
	if m.focus == focusInput && m.sidebar.Visible {
		m.focus = focusSidebar
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
}

// acceptSuggestion copies the highlighted completion into the input.
func (m *Model) acceptSuggestion() {
	picked, ok := m.suggest.Accept()
	if !ok {
		return
	}
	m.input.SetValue(picked)
	m.input.CursorEnd()
	m.lastInput = picked
}

// sendCurrentInput sends whatever is typed in the textarea.
func (m *Model) sendCurrentInput() tea.Cmd {
	return m.sendText(m.input.Value())
}

// sendText submits a user query. Sends are ignored while a reply is already
// in flight. A fresh chat mints its session id here, on first send.
func (m *Model) sendText(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if m.awaiting {
		return m.notice.Notify(NoticeWarning, "Still waiting for a reply")
	}

	if m.sessionID == "" {
		m.sessionID = uuid.NewString()
		m.sidebar.ActiveID = m.sessionID
		m.statusBar.SessionID = m.sessionID
	}

	m.thread.Append(SenderUser, text)
	m.thread.StartThinking()
	m.awaiting = true
	m.statusBar.Awaiting = true

	m.input.Reset()
	m.lastInput = ""
	m.suggest.Reset()

	return tea.Batch(
		chatCmd(m.backend, text, m.config.Lang, m.sessionID),
		thinkingTickCmd(),
	)
}

// openSelectedSession loads the session under the sidebar cursor. The open
// chat stays fully intact until the load succeeds; a failed load changes
// nothing beyond an error notice.
func (m *Model) openSelectedSession() tea.Cmd {
	sess, ok := m.sidebar.Selected()
	if !ok {
		return nil
	}
	m.focus = focusInput
	m.input.Focus()
	if sess.ID == m.sessionID {
		return nil
	}

	m.loadSeq++
	return loadSessionCmd(m.backend, m.loadSeq, sess.ID)
}

// submitRename validates and sends the rename. A blank title never reaches
// the network; the input stays open so the user can fix it.
func (m *Model) submitRename() tea.Cmd {
	title := strings.TrimSpace(m.sidebar.RenameValue())
	if title == "" {
		return m.notice.Notify(NoticeWarning, "Title cannot be empty")
	}
	id := m.sidebar.RenameTarget()
	m.sidebar.CancelRename()
	return renameSessionCmd(m.backend, id, title)
}

// startNewChat resets to a fresh, unsaved chat. No session id is allocated
// until the first message is sent.
func (m *Model) startNewChat() {
	m.loadSeq++ // invalidate any in-flight load
	m.sessionID = ""
	m.awaiting = false
	m.statusBar.Awaiting = false
	m.statusBar.SessionID = ""
	m.sidebar.ActiveID = ""
	m.thread.Clear()
	m.suggest.Reset()
	m.input.Reset()
	m.lastInput = ""
	m.focus = focusInput
	m.input.Focus()
}

// updateLayout recomputes sub-model dimensions after a resize or toggle.
func (m *Model) updateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	sidebarWidth := 0
	if m.sidebar.Visible {
		sidebarWidth = 30
		if sidebarWidth > m.width/3 {
			sidebarWidth = m.width / 3
		}
	}

	mainWidth := m.width - sidebarWidth
	inputHeight := 5   // textarea plus border
	statusHeight := 2  // notice line plus status bar
	threadHeight := m.height - inputHeight - statusHeight
	if threadHeight < 3 {
		threadHeight = 3
	}

	m.sidebar.SetSize(sidebarWidth-2, m.height-2)
	m.thread.SetSize(mainWidth, threadHeight)
	m.input.SetWidth(mainWidth - 2)
	m.statusBar.Width = m.width
}

// View renders the full screen
func (m Model) View() string {
	if m.quitting {
		return "Happy reading!\n"
	}
	if m.width == 0 {
		return "Loading..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.thread.View(),
		m.renderInputArea(),
	)

	var body string
	if m.sidebar.Visible {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)
	} else {
		body = main
	}

	noticeLine := m.notice.View()

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		noticeLine,
		m.statusBar.View(),
	)
}

// renderInputArea renders the textarea with the suggestion dropdown above it.
func (m Model) renderInputArea() string {
	parts := []string{}
	if dropdown := m.suggest.View(); dropdown != "" {
		parts = append(parts, dropdown)
	}
	parts = append(parts, m.styles.InputStyle.Render(m.input.View()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
