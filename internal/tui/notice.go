package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// NoticeTTL is how long a notification stays on screen.
const NoticeTTL = 3 * time.Second

// NoticeLevel classifies a notification for styling.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// NoticeModel holds the single transient notification slot.
// A new notice replaces the current one immediately; each notice bumps seq
// so the expiry tick of a replaced notice cannot clear its successor.
type NoticeModel struct {
	Styles Styles
	TTL    time.Duration

	seq   int
	text  string
	level NoticeLevel
}

// NewNoticeModel creates an empty notification slot.
func NewNoticeModel(styles Styles) NoticeModel {
	return NoticeModel{Styles: styles, TTL: NoticeTTL}
}

// Active reports whether a notice is currently displayed.
func (n *NoticeModel) Active() bool {
	return n.text != ""
}

// Text returns the current notice text, empty when none is shown.
func (n *NoticeModel) Text() string {
	return n.text
}

// Notify shows a notice and arms its expiry timer.
func (n *NoticeModel) Notify(level NoticeLevel, text string) tea.Cmd {
	n.seq++
	n.text = text
	n.level = level

	seq := n.seq
	ttl := n.TTL
	if ttl <= 0 {
		ttl = NoticeTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return NoticeExpireMsg{Seq: seq}
	})
}

// Expire clears the notice if the expiry belongs to it. Expiries armed for
// an already-replaced notice are ignored.
func (n *NoticeModel) Expire(seq int) {
	if seq != n.seq {
		return
	}
	n.text = ""
}

// Clear removes the notice immediately.
func (n *NoticeModel) Clear() {
	n.seq++
	n.text = ""
}

// View renders the notice bar, or an empty string when idle.
func (n NoticeModel) View() string {
	if n.text == "" {
		return ""
	}
	switch n.level {
	case NoticeSuccess:
		return n.Styles.NoticeSuccess.Render(n.text)
	case NoticeWarning:
		return n.Styles.NoticeWarning.Render(n.text)
	case NoticeError:
		return n.Styles.NoticeError.Render(n.text)
	default:
		return n.Styles.NoticeInfo.Render(n.text)
	}
}
