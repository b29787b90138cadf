package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is how long input must be idle before a completion fetch.
const DefaultDebounce = 300 * time.Millisecond

// SuggestModel manages the debounced autocomplete dropdown.
//
// Every edit bumps seq and arms a debounce tick carrying that seq. A tick
// whose seq no longer matches was superseded by a later edit and does
// nothing, so at most one fetch fires per idle period. Fetch results carry
// the seq too, which drops responses that arrive after further edits.
type SuggestModel struct {
	Styles   Styles
	Debounce time.Duration
	Limit    int

	seq     int
	input   string
	items   []string
	cursor  int
	visible bool
	engaged bool
}

// NewSuggestModel creates an autocomplete model with the given fetch limit.
func NewSuggestModel(styles Styles, debounce time.Duration, limit int) SuggestModel {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if limit <= 0 {
		limit = 5
	}
	return SuggestModel{
		Styles:   styles,
		Debounce: debounce,
		Limit:    limit,
	}
}

// Visible reports whether the dropdown is currently shown.
func (s *SuggestModel) Visible() bool {
	return s.visible
}

// Items returns the current completion candidates.
func (s *SuggestModel) Items() []string {
	return s.items
}

// Cursor returns the index of the highlighted candidate.
func (s *SuggestModel) Cursor() int {
	return s.cursor
}

// Engaged reports whether the user has moved the highlight with the arrow
// keys. Enter accepts only an engaged highlight; otherwise it sends.
func (s *SuggestModel) Engaged() bool {
	return s.engaged
}

// InputChanged records an input edit and arms the debounce timer.
// Returns nil when the input is unchanged, so cursor movement and
// accepted suggestions do not refire a fetch.
func (s *SuggestModel) InputChanged(input string) tea.Cmd {
	if input == s.input {
		return nil
	}
	s.input = input
	s.seq++
	s.hide()

	if strings.TrimSpace(input) == "" {
		return nil
	}

	seq := s.seq
	return tea.Tick(s.Debounce, func(time.Time) tea.Msg {
		return SuggestTickMsg{Seq: seq}
	})
}

// TickElapsed handles a debounce tick. It returns the prefix to fetch and
// true when the tick is still current; a stale tick returns false.
func (s *SuggestModel) TickElapsed(seq int) (string, bool) {
	if seq != s.seq {
		return "", false
	}
	if strings.TrimSpace(s.input) == "" {
		return "", false
	}
	return s.input, true
}

// ApplyResult installs fetched completions. Results from a superseded edit
// or a failed fetch are discarded silently.
func (s *SuggestModel) ApplyResult(msg SuggestResultMsg) {
	if msg.Seq != s.seq {
		return
	}
	if msg.Err != nil || len(msg.Completions) == 0 {
		s.hide()
		return
	}
	s.items = msg.Completions
	s.cursor = 0
	s.engaged = false
	s.visible = true
}

// Next moves the highlight down, wrapping to the top.
func (s *SuggestModel) Next() {
	if !s.visible || len(s.items) == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % len(s.items)
	s.engaged = true
}

// Prev moves the highlight up, wrapping to the bottom.
func (s *SuggestModel) Prev() {
	if !s.visible || len(s.items) == 0 {
		return
	}
	s.cursor = (s.cursor - 1 + len(s.items)) % len(s.items)
	s.engaged = true
}

// Accept returns the highlighted candidate and closes the dropdown.
// The accepted text becomes the current input so it does not refetch.
func (s *SuggestModel) Accept() (string, bool) {
	if !s.visible || len(s.items) == 0 {
		return "", false
	}
	picked := s.items[s.cursor]
	s.input = picked
	s.seq++
	s.hide()
	return picked, true
}

// Dismiss closes the dropdown and invalidates any in-flight fetch.
func (s *SuggestModel) Dismiss() {
	s.seq++
	s.hide()
}

// Reset clears all state, for session switches and sends.
func (s *SuggestModel) Reset() {
	s.seq++
	s.input = ""
	s.hide()
}

func (s *SuggestModel) hide() {
	s.visible = false
	s.items = nil
	s.cursor = 0
	s.engaged = false
}

// View renders the dropdown, or an empty string when hidden.
func (s SuggestModel) View() string {
	if !s.visible || len(s.items) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, item := range s.items {
		if i > 0 {
			sb.WriteString("\n")
		}
		if i == s.cursor {
			sb.WriteString(s.Styles.SuggestSelected.Render("> " + item))
		} else {
			sb.WriteString(s.Styles.SuggestItem.Render("  " + item))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(s.Styles.SuggestHint.Render("tab/enter accept · up/down move · esc close"))

	return s.Styles.SuggestBox.Render(sb.String())
}
