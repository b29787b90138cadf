package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"

	"bookchat/internal/api"
)

// Sender identifies who authored a chat message.
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

// ChatMessage is a single rendered message in the thread.
type ChatMessage struct {
	ID        int
	Sender    Sender
	Content   string
	Timestamp time.Time
}

// StarterPrompts are offered on the welcome screen and sent verbatim
// when the user picks one.
var StarterPrompts = []string{
	"Recommend me a science fiction book",
	"I want a book about personal finance",
	"What should I read if I loved Pride and Prejudice?",
}

// ThreadModel manages the message thread viewport.
type ThreadModel struct {
	Messages      []ChatMessage
	Viewport      viewport.Model
	Width         int
	Height        int
	Thinking      bool
	ThinkingFrame int
	Styles        Styles
	AssistantName string

	nextID int
}

// NewThreadModel creates an empty message thread.
func NewThreadModel(styles Styles, assistantName string) ThreadModel {
	vp := viewport.New(80, 20)
	vp.SetContent("")
	name := assistantName
	if name == "" {
		name = "BookBot"
	}
	return ThreadModel{
		Viewport:      vp,
		Styles:        styles,
		AssistantName: name,
		nextID:        1,
	}
}

// SetSize updates the viewport dimensions
func (t *ThreadModel) SetSize(width, height int) {
	t.Width = width
	t.Height = height
	t.Viewport.Width = width
	t.Viewport.Height = height
	t.refreshContent()
}

// Append adds a message to the end of the thread and scrolls to it.
func (t *ThreadModel) Append(sender Sender, content string) ChatMessage {
	msg := ChatMessage{
		ID:        t.nextID,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	}
	t.nextID++
	t.Messages = append(t.Messages, msg)
	t.refreshContent()
	t.Viewport.GotoBottom()
	return msg
}

// SetMessages replaces the whole thread with a loaded history.
func (t *ThreadModel) SetMessages(wire []api.Message) {
	t.Messages = t.Messages[:0]
	for _, m := range wire {
		sender := SenderBot
		if m.Role == api.RoleUser {
			sender = SenderUser
		}
		t.Messages = append(t.Messages, ChatMessage{
			ID:      t.nextID,
			Sender:  sender,
			Content: m.Content,
		})
		t.nextID++
	}
	t.refreshContent()
	t.Viewport.GotoBottom()
}

// WireMessages converts the thread back to wire format for persistence.
func (t *ThreadModel) WireMessages() []api.Message {
	out := make([]api.Message, 0, len(t.Messages))
	for _, m := range t.Messages {
		role := api.RoleAssistant
		if m.Sender == SenderUser {
			role = api.RoleUser
		}
		out = append(out, api.Message{Role: role, Content: m.Content})
	}
	return out
}

// Clear removes all messages
func (t *ThreadModel) Clear() {
	t.Messages = nil
	t.Thinking = false
	t.refreshContent()
}

// StartThinking shows the scanner bar until the reply arrives.
func (t *ThreadModel) StartThinking() {
	t.Thinking = true
	t.ThinkingFrame = 0
	t.refreshContent()
	t.Viewport.GotoBottom()
}

// StopThinking hides the scanner bar.
func (t *ThreadModel) StopThinking() {
	t.Thinking = false
	t.refreshContent()
}

// ThinkingTick advances the scanner animation by one frame.
func (t *ThreadModel) ThinkingTick() {
	t.ThinkingFrame++
	t.refreshContent()
	t.Viewport.GotoBottom()
}

// renderScannerBar renders a KITT-style bouncing bar for the thinking indicator.
func (t *ThreadModel) renderScannerBar() string {
	const trackWidth = 16
	const barWidth = 3

	maxPos := trackWidth - barWidth
	cycle := 2 * maxPos
	pos := t.ThinkingFrame % cycle
	if pos > maxPos {
		pos = cycle - pos // bounce back
	}

	label := t.Styles.Muted.Render(fmt.Sprintf("  %s is thinking  ", t.AssistantName))

	var styled strings.Builder
	styled.WriteString(t.Styles.ThinkingTrack.Render("["))
	for i := 0; i < trackWidth; i++ {
		if i >= pos && i < pos+barWidth {
			styled.WriteString(t.Styles.ThinkingBar.Render("="))
		} else {
			styled.WriteString(t.Styles.ThinkingTrack.Render(" "))
		}
	}
	styled.WriteString(t.Styles.ThinkingTrack.Render("]"))

	return label + styled.String()
}

// refreshContent rebuilds the viewport content from messages
func (t *ThreadModel) refreshContent() {
	maxWidth := t.Width - 6 // padding
	if maxWidth < 20 {
		maxWidth = 20
	}

	if len(t.Messages) == 0 && !t.Thinking {
		t.Viewport.SetContent(t.renderWelcome(maxWidth))
		return
	}

	var sb strings.Builder
	for i, msg := range t.Messages {
		if i > 0 {
			sb.WriteString(t.Styles.Divider.Render(strings.Repeat("─", maxWidth)))
			sb.WriteString("\n")
		}
		sb.WriteString(t.renderMessage(msg, maxWidth))
		sb.WriteString("\n")
	}

	if t.Thinking {
		sb.WriteString(t.renderScannerBar() + "\n")
	}

	t.Viewport.SetContent(sb.String())
}

// renderWelcome renders the empty-thread welcome screen with starter prompts.
func (t *ThreadModel) renderWelcome(maxWidth int) string {
	var sb strings.Builder
	sb.WriteString(t.Styles.Bold.Render(fmt.Sprintf("Welcome to %s", t.AssistantName)))
	sb.WriteString("\n\n")
	sb.WriteString("Tell me what you like to read and I'll find your next book.\n")
	sb.WriteString("Try one of these to get started:\n\n")
	for i, prompt := range StarterPrompts {
		sb.WriteString(t.Styles.Accent.Render(fmt.Sprintf("  [%d] ", i+1)))
		sb.WriteString(wrapText(prompt, maxWidth-6))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(t.Styles.Muted.Render("Press 1-3 to send a starter prompt, or just start typing."))
	return t.Styles.Welcome.Render(sb.String())
}

// renderMessage renders a single chat bubble
func (t *ThreadModel) renderMessage(msg ChatMessage, maxWidth int) string {
	var sb strings.Builder

	switch msg.Sender {
	case SenderUser:
		label := t.Styles.UserLabel.Render("You")
		ts := t.Styles.Muted.Render(t.formatTimestamp(msg.Timestamp))
		sb.WriteString(fmt.Sprintf("%s %s\n", label, ts))
		sb.WriteString(t.Styles.UserBubble.Render(wrapText(msg.Content, maxWidth)))

	case SenderBot:
		label := t.Styles.AssistantLabel.Render(t.AssistantName)
		ts := t.Styles.Muted.Render(t.formatTimestamp(msg.Timestamp))
		sb.WriteString(fmt.Sprintf("%s %s\n", label, ts))
		sb.WriteString(t.Styles.AssistantBubble.Render(wrapText(msg.Content, maxWidth)))
	}

	return sb.String()
}

// formatTimestamp renders a message time; loaded history has no timestamp.
func (t *ThreadModel) formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("15:04")
}

// View renders the thread viewport
func (t ThreadModel) View() string {
	return t.Viewport.View()
}

// wrapText wraps text to fit within maxWidth
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		if len(line) <= maxWidth {
			result.WriteString(line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if currentLine == "" {
				currentLine = word
			} else if len(currentLine)+1+len(word) <= maxWidth {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine + "\n")
				currentLine = word
			}
		}
		if currentLine != "" {
			result.WriteString(currentLine)
		}
	}

	return result.String()
}
