package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the TUI styling definitions
type Styles struct {
	// Title bar
	TitleBar lipgloss.Style

	// Chat bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	Divider         lipgloss.Style
	Welcome         lipgloss.Style

	// Sidebar (conversation list)
	SidebarBorder   lipgloss.Style
	SidebarTitle    lipgloss.Style
	SessionItem     lipgloss.Style
	SessionActive   lipgloss.Style
	SessionSelected lipgloss.Style

	// Autocomplete dropdown
	SuggestBox      lipgloss.Style
	SuggestItem     lipgloss.Style
	SuggestSelected lipgloss.Style
	SuggestHint     lipgloss.Style

	// Notifications
	NoticeInfo    lipgloss.Style
	NoticeSuccess lipgloss.Style
	NoticeWarning lipgloss.Style
	NoticeError   lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusWaiting lipgloss.Style

	// Input
	InputStyle lipgloss.Style

	// Thinking indicator
	ThinkingBar   lipgloss.Style
	ThinkingTrack lipgloss.Style

	// General
	Muted  lipgloss.Style
	Bold   lipgloss.Style
	Accent lipgloss.Style
}

// DefaultStyles creates the default style set using the default renderer.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// NewStyles creates the style set using the given renderer.
// Over SSH, pass the renderer from wishbubbletea.MakeRenderer(sess)
// so that styles emit ANSI colors appropriate for the SSH client's terminal.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		TitleBar: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),

		// Chat bubbles
		UserBubble: r.NewStyle().
			Foreground(lipgloss.Color("75")).
			Padding(0, 1).
			MarginLeft(4),
		AssistantBubble: r.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1).
			MarginRight(4),
		UserLabel: r.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true),
		AssistantLabel: r.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true),
		Divider: r.NewStyle().
			Foreground(lipgloss.Color("238")),
		Welcome: r.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(1, 2),

		// Sidebar
		SidebarBorder: r.NewStyle().
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		SidebarTitle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114")).
			MarginBottom(1),
		SessionItem: r.NewStyle().
			Foreground(lipgloss.Color("252")),
		SessionActive: r.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true),
		SessionSelected: r.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")),

		// Autocomplete dropdown
		SuggestBox: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		SuggestItem: r.NewStyle().
			Foreground(lipgloss.Color("252")),
		SuggestSelected: r.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")),
		SuggestHint: r.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),

		// Notifications
		NoticeInfo: r.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 1),
		NoticeSuccess: r.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28")).
			Padding(0, 1),
		NoticeWarning: r.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		NoticeError: r.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),

		// Status bar
		StatusBar: r.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		StatusWaiting: r.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),

		// Input
		InputStyle: r.NewStyle().
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")),

		// Thinking indicator
		ThinkingBar: r.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true),
		ThinkingTrack: r.NewStyle().
			Foreground(lipgloss.Color("238")),

		// General
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		Bold: r.NewStyle().
			Bold(true),
		Accent: r.NewStyle().
			Foreground(lipgloss.Color("114")),
	}
}
