package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sessions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sessions": []map[string]string{
				{"id": "s1", "title": "AI books"},
				{"id": "s2", "title": "Romance novels"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	sessions, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s1", sessions[0].ID)
	assert.Equal(t, "AI books", sessions[0].Title)
	assert.Equal(t, "s2", sessions[1].ID)
}

func TestListSessionsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.ListSessions(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestLoadSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/abc-123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"session_id": "abc-123",
			"messages": []map[string]string{
				{"role": "user", "content": "I want a book about AI"},
				{"role": "assistant", "content": "Try Superintelligence."},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	msgs, err := c.LoadSession(context.Background(), "abc-123")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Try Superintelligence.", msgs[1].Content)
}

func TestLoadSessionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Session not found or empty."}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.LoadSession(context.Background(), "missing")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestSaveSession(t *testing.T) {
	var got saveSessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	err := c.SaveSession(context.Background(), "abc-123", []Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi there"},
	})
	require.NoError(t, err)
	assert.Equal(t, "abc-123", got.SessionID)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleUser, got.Messages[0].Role)
	assert.Equal(t, RoleAssistant, got.Messages[1].Role)
}

func TestRenameSession(t *testing.T) {
	var got renameRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/sessions/s1/title", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	require.NoError(t, c.RenameSession(context.Background(), "s1", "Sci-fi picks"))
	assert.Equal(t, "Sci-fi picks", got.NewTitle)
}

func TestDeleteSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/sessions/s1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"Noti": "Delete Success"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	noti, err := c.DeleteSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Delete Success", noti)
}

func TestDeleteSessionNoNoti(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	noti, err := c.DeleteSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, noti)
}

func TestChat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/response", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"response": "Try Dune."})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	reply, err := c.Chat(context.Background(), "recommend sci-fi", "en", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "Try Dune.", reply)
	assert.Equal(t, "recommend sci-fi", got.Query)
	assert.Equal(t, "en", got.Lang)
	assert.Equal(t, "abc-123", got.SessionID)
}

func TestChatNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed up front so the request fails at dial time

	c := NewClient(srv.URL, 0)
	_, err := c.Chat(context.Background(), "q", "en", "s1")
	require.Error(t, err)
}

func TestAutocomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/s1/autocomplete", r.URL.Path)
		assert.Equal(t, "I want", r.URL.Query().Get("input_prefix"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string][]string{
			"completions": {"I want a mystery novel", "I want a biography"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	completions, err := c.Autocomplete(context.Background(), "s1", "I want", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"I want a mystery novel", "I want a biography"}, completions)
}

func TestAutocompleteEmptyPrefixRejectedLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.Autocomplete(context.Background(), "s1", "   ", 5)
	require.Error(t, err)
	assert.False(t, called, "blank prefix should never reach the network")
}
