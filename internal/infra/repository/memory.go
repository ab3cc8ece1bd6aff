package repository

import (
	"container/list"
	"sync"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
)

// DefaultSessionCapacity bounds the fallback session cache. Each entry is one
// live call, so this comfortably covers any realistic outage window.
const DefaultSessionCapacity = 1024

// SessionCache is the in-process fallback store used when the document store
// is unreachable. It is a fixed-capacity LRU so a long outage cannot grow it
// without bound. Twilio delivers webhooks for a single call sequentially, but
// distinct calls land concurrently, so access is mutex-guarded.
type SessionCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	sessions map[string]*list.Element
}

type cacheEntry struct {
	key     string
	session *entities.ConversationSession
}

func NewSessionCache(capacity int) *SessionCache {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}
	return &SessionCache{
		capacity: capacity,
		order:    list.New(),
		sessions: make(map[string]*list.Element),
	}
}

// Get returns the cached session for key, or nil when absent.
func (c *SessionCache) Get(key string) *entities.ConversationSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.sessions[key]
	if !ok {
		return nil
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).session
}

// Put stores or refreshes a session, evicting the least recently used entry
// once capacity is reached.
func (c *SessionCache) Put(key string, session *entities.ConversationSession) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.sessions[key]; ok {
		elem.Value.(*cacheEntry).session = session
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.sessions, oldest.Value.(*cacheEntry).key)
		}
	}

	c.sessions[key] = c.order.PushFront(&cacheEntry{key: key, session: session})
}

// Len reports the number of cached sessions.
func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
