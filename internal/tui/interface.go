package tui

import (
	"context"

	"bookchat/internal/api"
)

// Backend abstracts the recommendation service behind the TUI.
// api.Client implements this over HTTP; tests substitute an in-memory fake.
type Backend interface {
	ListSessions(ctx context.Context) ([]api.Session, error)
	LoadSession(ctx context.Context, id string) ([]api.Message, error)
	SaveSession(ctx context.Context, id string, messages []api.Message) error
	RenameSession(ctx context.Context, id, newTitle string) error
	DeleteSession(ctx context.Context, id string) (string, error)
	Chat(ctx context.Context, query, lang, sessionID string) (string, error)
	Autocomplete(ctx context.Context, sessionID, prefix string, limit int) ([]string, error)
}
