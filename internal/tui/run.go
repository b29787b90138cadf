package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bookchat/internal/api"
)

// api.Client satisfies the Backend interface used by the model.
var _ Backend = (*api.Client)(nil)

// Run starts the local TUI client
func Run(config *Config) error {
	client := api.NewClient(config.ServerURL, time.Duration(config.RequestTimeoutSec)*time.Second)

	model := NewModel(ModelConfig{
		Backend:           client,
		ServerURL:         config.ServerURL,
		Lang:              config.Lang,
		AssistantName:     config.AssistantName,
		AutocompleteLimit: config.AutocompleteLimit,
		Debounce:          time.Duration(config.DebounceMs) * time.Millisecond,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
