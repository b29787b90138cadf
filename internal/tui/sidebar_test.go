package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookchat/internal/api"
)

func testSessions() []api.Session {
	return []api.Session{
		{ID: "s1", Title: "AI books"},
		{ID: "s2", Title: "Romance"},
		{ID: "s3", Title: "History"},
	}
}

func TestSidebarCursorClampOnShrink(t *testing.T) {
	s := NewSidebarModel(DefaultStyles())
	s.SetSessions(testSessions())
	s.MoveDown()
	s.MoveDown()
	assert.Equal(t, 2, s.Cursor)

	s.SetSessions(testSessions()[:1])
	assert.Equal(t, 0, s.Cursor)

	s.SetSessions(nil)
	assert.Equal(t, 0, s.Cursor)
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSidebarMoveBounds(t *testing.T) {
	s := NewSidebarModel(DefaultStyles())
	s.SetSessions(testSessions())

	s.MoveUp()
	assert.Equal(t, 0, s.Cursor, "MoveUp stops at the top")

	s.MoveDown()
	s.MoveDown()
	s.MoveDown()
	assert.Equal(t, 2, s.Cursor, "MoveDown stops at the bottom")
}

func TestSidebarRenameFlow(t *testing.T) {
	s := NewSidebarModel(DefaultStyles())
	s.SetSessions(testSessions())
	s.MoveDown()

	require.True(t, s.StartRename())
	assert.True(t, s.Renaming)
	assert.Equal(t, "s2", s.RenameTarget())
	assert.Equal(t, "Romance", s.RenameValue(), "input prefilled with current title")

	s.CancelRename()
	assert.False(t, s.Renaming)

	s.ApplyRename("s2", "Love stories")
	assert.Equal(t, "Love stories", s.Sessions[1].Title)
}

func TestSidebarRenameWithNoSelection(t *testing.T) {
	s := NewSidebarModel(DefaultStyles())
	assert.False(t, s.StartRename())
}

func TestSidebarRemoveSession(t *testing.T) {
	s := NewSidebarModel(DefaultStyles())
	s.SetSessions(testSessions())
	s.MoveDown()
	s.MoveDown()

	s.RemoveSession("s3")
	require.Len(t, s.Sessions, 2)
	assert.Equal(t, 1, s.Cursor, "cursor pulls back after removing the last row")

	s.RemoveSession("missing")
	assert.Len(t, s.Sessions, 2)
}

func TestSidebarTruncatesLongTitlesOnRunes(t *testing.T) {
	s := NewSidebarModel(DefaultStyles())
	s.SetSize(20, 20)
	s.SetSessions([]api.Session{
		{ID: "s1", Title: "本を読むのが大好きです毎日新しい物語を探しています"},
		{ID: "s2", Title: strings.Repeat("long english title ", 5)},
	})

	view := s.View()
	assert.True(t, utf8.ValidString(view), "truncation must not split multi-byte runes")
	assert.Contains(t, view, "…")
}

func TestSidebarViewMarksActiveAndConfirm(t *testing.T) {
	s := NewSidebarModel(DefaultStyles())
	s.SetSize(30, 20)
	s.SetSessions(testSessions())
	s.ActiveID = "s2"

	view := s.View()
	assert.Contains(t, view, "AI books")
	assert.Contains(t, view, "* Romance")

	s.ConfirmingDelete = true
	assert.Contains(t, s.View(), "delete? (y/n)")
}
