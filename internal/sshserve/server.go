package sshserve

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	charmssh "github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishbubbletea "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"bookchat/internal/api"
	"bookchat/internal/tui"
)

// Config holds configuration for the SSH server
type Config struct {
	ListenAddr         string
	HostKeyPath        string
	AuthorizedKeysPath string

	// Client settings passed through to each SSH session's TUI.
	ServerURL         string
	Lang              string
	AssistantName     string
	AutocompleteLimit int
	Debounce          time.Duration
	RequestTimeout    time.Duration
}

// NewServer creates a Wish SSH server that serves the chat TUI
func NewServer(config Config) (*charmssh.Server, error) {
	if config.ListenAddr == "" {
		config.ListenAddr = ":2222"
	}
	if config.HostKeyPath == "" {
		dir, err := sshConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get SSH config dir: %w", err)
		}
		config.HostKeyPath = dir + "/ssh_host_key"
	}

	authorizedKeys, err := LoadAuthorizedKeys(config.AuthorizedKeysPath)
	if err != nil {
		log.Warn("No authorized keys loaded; SSH server is open", "err", err)
		authorizedKeys = nil
	} else {
		log.Info("Loaded authorized keys", "count", len(authorizedKeys))
	}

	handler := func(sess charmssh.Session) (tea.Model, []tea.ProgramOption) {
		return bubbleTeaHandler(sess, config)
	}

	opts := []charmssh.Option{
		wish.WithAddress(config.ListenAddr),
		wish.WithHostKeyPath(config.HostKeyPath),
		wish.WithMiddleware(
			wishbubbletea.Middleware(handler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	}

	if len(authorizedKeys) > 0 {
		opts = append(opts, wish.WithPublicKeyAuth(func(ctx charmssh.Context, key charmssh.PublicKey) bool {
			return publicKeyHandler(ctx, key, authorizedKeys)
		}))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	return server, nil
}

// bubbleTeaHandler creates a TUI model for each SSH session. Each session
// gets its own API client and a renderer matched to the connecting terminal.
func bubbleTeaHandler(sess charmssh.Session, config Config) (tea.Model, []tea.ProgramOption) {
	client := api.NewClient(config.ServerURL, config.RequestTimeout)
	renderer := wishbubbletea.MakeRenderer(sess)

	model := tui.NewModel(tui.ModelConfig{
		Backend:           client,
		ServerURL:         config.ServerURL,
		Lang:              config.Lang,
		AssistantName:     config.AssistantName,
		AutocompleteLimit: config.AutocompleteLimit,
		Debounce:          config.Debounce,
		Renderer:          renderer,
	})

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// publicKeyHandler validates SSH public keys against the authorized keys list
func publicKeyHandler(ctx charmssh.Context, key charmssh.PublicKey, authorizedKeys []charmssh.PublicKey) bool {
	for _, authKey := range authorizedKeys {
		if charmssh.KeysEqual(key, authKey) {
			log.Info("Public key accepted", "user", ctx.User())
			return true
		}
	}
	log.Warn("Public key rejected", "user", ctx.User())
	return false
}
