package tui

import (
	"bookchat/internal/api"
)

// BubbleTea message types produced by backend commands and timers

// SessionListMsg delivers the list of saved sessions
type SessionListMsg struct {
	Sessions []api.Session
	Err      error
}

// SessionLoadedMsg delivers a session's full message history.
// Seq correlates the response with the load request that is still current;
// stale loads (the user switched again mid-flight) are dropped.
type SessionLoadedMsg struct {
	Seq       int
	SessionID string
	Messages  []api.Message
	Err       error
}

// SessionSavedMsg signals completion of a background session save
type SessionSavedMsg struct {
	SessionID string
	Err       error
}

// SessionRenamedMsg signals completion of a rename request
type SessionRenamedMsg struct {
	SessionID string
	NewTitle  string
	Err       error
}

// SessionDeletedMsg signals completion of a delete request
type SessionDeletedMsg struct {
	SessionID string
	Noti      string
	Err       error
}

// ChatReplyMsg delivers the assistant reply for a sent query.
// SessionID is the session the query was sent under; replies for a
// session that is no longer active are dropped.
type ChatReplyMsg struct {
	SessionID string
	Reply     string
	Err       error
}

// PersistTickMsg fires after the post-reply save delay elapses
type PersistTickMsg struct {
	SessionID string
}

// SuggestTickMsg fires when the autocomplete debounce window closes.
// The fetch proceeds only if Seq still matches the current edit sequence.
type SuggestTickMsg struct {
	Seq int
}

// SuggestResultMsg delivers autocomplete completions for edit sequence Seq
type SuggestResultMsg struct {
	Seq         int
	Completions []string
	Err         error
}

// NoticeExpireMsg fires when a notification's display window elapses
type NoticeExpireMsg struct {
	Seq int
}

// ThinkingTickMsg drives the KITT scanner animation in the chat view.
type ThinkingTickMsg struct{}
