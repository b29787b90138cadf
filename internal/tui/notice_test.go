package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeShowAndExpire(t *testing.T) {
	n := NewNoticeModel(DefaultStyles())
	n.TTL = time.Millisecond

	cmd := n.Notify(NoticeSuccess, "Chat renamed")
	require.NotNil(t, cmd)
	assert.True(t, n.Active())
	assert.Equal(t, "Chat renamed", n.Text())

	expire := cmd().(NoticeExpireMsg)
	n.Expire(expire.Seq)
	assert.False(t, n.Active())
}

func TestNoticeLastWriteWins(t *testing.T) {
	n := NewNoticeModel(DefaultStyles())
	n.TTL = time.Millisecond

	first := n.Notify(NoticeInfo, "first")
	second := n.Notify(NoticeError, "second")
	assert.Equal(t, "second", n.Text())

	// The replaced notice's expiry must not clear its successor.
	n.Expire(first().(NoticeExpireMsg).Seq)
	assert.True(t, n.Active())
	assert.Equal(t, "second", n.Text())

	n.Expire(second().(NoticeExpireMsg).Seq)
	assert.False(t, n.Active())
}

func TestNoticeClear(t *testing.T) {
	n := NewNoticeModel(DefaultStyles())
	n.TTL = time.Millisecond

	cmd := n.Notify(NoticeWarning, "careful")
	n.Clear()
	assert.False(t, n.Active())

	// Expiry from before the clear is a no-op.
	n.Expire(cmd().(NoticeExpireMsg).Seq)
	assert.False(t, n.Active())
}

func TestNoticeViewEmptyWhenIdle(t *testing.T) {
	n := NewNoticeModel(DefaultStyles())
	assert.Empty(t, n.View())
}
