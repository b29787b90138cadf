package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bookchat/internal/api"
)

// requestTimeout bounds each backend call issued from the update loop.
const requestTimeout = 15 * time.Second

func fetchSessionsCmd(backend Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sessions, err := backend.ListSessions(ctx)
		return SessionListMsg{Sessions: sessions, Err: err}
	}
}

func loadSessionCmd(backend Backend, seq int, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msgs, err := backend.LoadSession(ctx, sessionID)
		return SessionLoadedMsg{Seq: seq, SessionID: sessionID, Messages: msgs, Err: err}
	}
}

func saveSessionCmd(backend Backend, sessionID string, messages []api.Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := backend.SaveSession(ctx, sessionID, messages)
		return SessionSavedMsg{SessionID: sessionID, Err: err}
	}
}

func renameSessionCmd(backend Backend, sessionID, newTitle string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := backend.RenameSession(ctx, sessionID, newTitle)
		return SessionRenamedMsg{SessionID: sessionID, NewTitle: newTitle, Err: err}
	}
}

func deleteSessionCmd(backend Backend, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		noti, err := backend.DeleteSession(ctx, sessionID)
		return SessionDeletedMsg{SessionID: sessionID, Noti: noti, Err: err}
	}
}

func chatCmd(backend Backend, query, lang, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		reply, err := backend.Chat(ctx, query, lang, sessionID)
		return ChatReplyMsg{SessionID: sessionID, Reply: reply, Err: err}
	}
}

func autocompleteCmd(backend Backend, seq int, sessionID, prefix string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		completions, err := backend.Autocomplete(ctx, sessionID, prefix, limit)
		return SuggestResultMsg{Seq: seq, Completions: completions, Err: err}
	}
}

func persistTickCmd(delay time.Duration, sessionID string) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return PersistTickMsg{SessionID: sessionID}
	})
}

func thinkingTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return ThinkingTickMsg{}
	})
}
