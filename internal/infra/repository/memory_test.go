package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
)

func session(callSID string) *entities.ConversationSession {
	return &entities.ConversationSession{BusinessID: "biz", CallSID: callSID}
}

func TestSessionCachePutGet(t *testing.T) {
	cache := NewSessionCache(4)

	s := session("CA100")
	cache.Put(s.Key(), s)

	got := cache.Get(s.Key())
	require.NotNil(t, got)
	assert.Equal(t, "CA100", got.CallSID)

	assert.Nil(t, cache.Get("missing"))
}

func TestSessionCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewSessionCache(3)

	for i := 0; i < 3; i++ {
		s := session(fmt.Sprintf("CA%d", i))
		cache.Put(s.Key(), s)
	}

	// Touch CA0 so CA1 becomes the eviction candidate.
	require.NotNil(t, cache.Get("biz:CA0"))

	s := session("CA3")
	cache.Put(s.Key(), s)

	assert.Equal(t, 3, cache.Len())
	assert.Nil(t, cache.Get("biz:CA1"))
	assert.NotNil(t, cache.Get("biz:CA0"))
	assert.NotNil(t, cache.Get("biz:CA3"))
}

func TestSessionCacheStaysBounded(t *testing.T) {
	cache := NewSessionCache(8)

	for i := 0; i < 100; i++ {
		s := session(fmt.Sprintf("CA%d", i))
		cache.Put(s.Key(), s)
	}

	assert.Equal(t, 8, cache.Len())
}

func TestSessionCachePutRefreshesExisting(t *testing.T) {
	cache := NewSessionCache(2)

	s := session("CA0")
	cache.Put(s.Key(), s)

	updated := session("CA0")
	updated.Lead.HasEmergency = true
	cache.Put(updated.Key(), updated)

	assert.Equal(t, 1, cache.Len())
	got := cache.Get("biz:CA0")
	require.NotNil(t, got)
	assert.True(t, got.Lead.HasEmergency)
}
