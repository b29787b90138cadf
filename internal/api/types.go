package api

// Wire roles exchanged with the recommendation service.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session is a persisted conversation as listed by GET /sessions.
type Session struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Message is a single exchanged message in wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// sessionListResponse is the body of GET /sessions.
type sessionListResponse struct {
	Sessions []Session `json:"sessions"`
}

// sessionDetailResponse is the body of GET /sessions/{id}.
type sessionDetailResponse struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

// saveSessionRequest is the body of POST /sessions.
type saveSessionRequest struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

// renameRequest is the body of PATCH /sessions/{id}/title.
type renameRequest struct {
	NewTitle string `json:"new_title"`
}

// deleteResponse is the body of DELETE /sessions/{id}. The Noti field is
// optional server flavor text; callers fall back to a local message.
type deleteResponse struct {
	Noti string `json:"Noti"`
}

// chatRequest is the body of POST /response.
type chatRequest struct {
	Query     string `json:"query"`
	Lang      string `json:"lang"`
	SessionID string `json:"session_id"`
}

// chatResponse is the body of POST /response.
type chatResponse struct {
	Response string `json:"response"`
}

// autocompleteResponse is the body of GET /sessions/{id}/autocomplete.
type autocompleteResponse struct {
	Completions []string `json:"completions"`
}
