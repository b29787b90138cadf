package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSuggest() SuggestModel {
	return NewSuggestModel(DefaultStyles(), 5*time.Millisecond, 5)
}

func TestSuggestDebounceSingleFetchPerWindow(t *testing.T) {
	s := newTestSuggest()

	// Three rapid edits arm three ticks, but only the last seq survives.
	cmd1 := s.InputChanged("I")
	cmd2 := s.InputChanged("I w")
	cmd3 := s.InputChanged("I wa")
	require.NotNil(t, cmd1)
	require.NotNil(t, cmd2)
	require.NotNil(t, cmd3)

	tick1 := cmd1().(SuggestTickMsg)
	tick2 := cmd2().(SuggestTickMsg)
	tick3 := cmd3().(SuggestTickMsg)

	_, ok := s.TickElapsed(tick1.Seq)
	assert.False(t, ok, "superseded tick must not fetch")
	_, ok = s.TickElapsed(tick2.Seq)
	assert.False(t, ok, "superseded tick must not fetch")

	prefix, ok := s.TickElapsed(tick3.Seq)
	require.True(t, ok, "only the newest tick fetches")
	assert.Equal(t, "I wa", prefix)
}

func TestSuggestUnchangedInputDoesNotRefire(t *testing.T) {
	s := newTestSuggest()
	require.NotNil(t, s.InputChanged("hello"))
	assert.Nil(t, s.InputChanged("hello"))
}

func TestSuggestBlankInputNeverFetches(t *testing.T) {
	s := newTestSuggest()
	assert.Nil(t, s.InputChanged("   "))
	assert.Nil(t, s.InputChanged(""))
}

func TestSuggestStaleResultDiscarded(t *testing.T) {
	s := newTestSuggest()
	cmd := s.InputChanged("fant")
	tick := cmd().(SuggestTickMsg)

	// Result for the old edit arrives after the user typed more.
	s.InputChanged("fantasy nov")
	s.ApplyResult(SuggestResultMsg{Seq: tick.Seq, Completions: []string{"fantasy"}})
	assert.False(t, s.Visible(), "stale result must not open the dropdown")
}

func TestSuggestApplyResult(t *testing.T) {
	s := newTestSuggest()
	tick := s.InputChanged("myst")().(SuggestTickMsg)

	s.ApplyResult(SuggestResultMsg{Seq: tick.Seq, Completions: []string{"mystery novels", "mystery thrillers"}})
	require.True(t, s.Visible())
	assert.Equal(t, []string{"mystery novels", "mystery thrillers"}, s.Items())
	assert.Equal(t, 0, s.Cursor())
	assert.False(t, s.Engaged())
}

func TestSuggestFailedFetchStaysHidden(t *testing.T) {
	s := newTestSuggest()
	tick := s.InputChanged("myst")().(SuggestTickMsg)

	s.ApplyResult(SuggestResultMsg{Seq: tick.Seq, Err: errors.New("boom")})
	assert.False(t, s.Visible())

	tick = s.InputChanged("myste")().(SuggestTickMsg)
	s.ApplyResult(SuggestResultMsg{Seq: tick.Seq, Completions: nil})
	assert.False(t, s.Visible(), "empty completions keep the dropdown closed")
}

func TestSuggestWrapAround(t *testing.T) {
	s := newTestSuggest()
	tick := s.InputChanged("b")().(SuggestTickMsg)
	s.ApplyResult(SuggestResultMsg{Seq: tick.Seq, Completions: []string{"a", "b", "c"}})

	s.Next()
	s.Next()
	assert.Equal(t, 2, s.Cursor())
	s.Next()
	assert.Equal(t, 0, s.Cursor(), "Next wraps from bottom to top")

	s.Prev()
	assert.Equal(t, 2, s.Cursor(), "Prev wraps from top to bottom")
	assert.True(t, s.Engaged())
}

func TestSuggestAccept(t *testing.T) {
	s := newTestSuggest()
	tick := s.InputChanged("b")().(SuggestTickMsg)
	s.ApplyResult(SuggestResultMsg{Seq: tick.Seq, Completions: []string{"book about space", "book about cats"}})

	s.Next()
	picked, ok := s.Accept()
	require.True(t, ok)
	assert.Equal(t, "book about cats", picked)
	assert.False(t, s.Visible())

	// The accepted text is now the current input, so it must not refetch.
	assert.Nil(t, s.InputChanged("book about cats"))
}

func TestSuggestAcceptWhenHidden(t *testing.T) {
	s := newTestSuggest()
	_, ok := s.Accept()
	assert.False(t, ok)
}

func TestSuggestDismissInvalidatesInFlight(t *testing.T) {
	s := newTestSuggest()
	tick := s.InputChanged("sci")().(SuggestTickMsg)
	s.Dismiss()

	s.ApplyResult(SuggestResultMsg{Seq: tick.Seq, Completions: []string{"sci-fi"}})
	assert.False(t, s.Visible(), "result for a dismissed fetch must be dropped")
}
