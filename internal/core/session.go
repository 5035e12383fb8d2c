package core

// session.go keeps mounted tables between requests.
//
// Each mount creates a session holding one Grid. Sessions live in a TTL
// cache: every access extends the idle deadline, and an idle session is
// dropped with its view state. The cache size is capped; mounting beyond
// the cap fails with ErrTooManySessions instead of evicting a live table.

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Velocidex/ttlcache/v2"
)

// ErrSessionNotFound is returned for an unknown or expired session id.
var ErrSessionNotFound = errors.New("session expired or not found")

// ErrTooManySessions is returned when the session cap is reached.
var ErrTooManySessions = errors.New("too many sessions, please close a table and try again")

// DefaultSessionTTL is the idle lifetime of a mounted table.
const DefaultSessionTTL = 30 * time.Minute

// DefaultMaxSessions caps the number of mounted tables.
const DefaultMaxSessions = 1000

// session is one mounted table. mu serializes every use of grid.
type session struct {
	mu        sync.Mutex
	id        string
	screen    ScreenInfo
	grid      Grid
	version   int64
	createdAt time.Time

	// closed is set on unmount so the expiry callback can tell the two apart.
	closed atomic.Bool
}

func (s *session) info() SessionInfo {
	return SessionInfo{
		ID:        s.id,
		Screen:    s.screen,
		Version:   s.version,
		CreatedAt: s.createdAt,
	}
}

// sessionCache stores sessions by id with an idle TTL.
type sessionCache struct {
	cache *ttlcache.Cache
	max   int

	// mu makes the count check and insert atomic.
	mu sync.Mutex
}

func newSessionCache(ttl time.Duration, max int, onExpire func(s *session)) *sessionCache {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if max <= 0 {
		max = DefaultMaxSessions
	}

	c := &sessionCache{cache: ttlcache.NewCache(), max: max}
	_ = c.cache.SetTTL(ttl)
	c.cache.SetCacheSizeLimit(max)
	c.cache.SetExpirationCallback(func(key string, value interface{}) error {
		if s, ok := value.(*session); ok && onExpire != nil {
			onExpire(s)
		}
		return nil
	})
	return c
}

func (c *sessionCache) put(s *session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache.Count() >= c.max {
		return ErrTooManySessions
	}
	return c.cache.Set(s.id, s)
}

// get returns the session and extends its idle deadline.
func (c *sessionCache) get(id string) (*session, error) {
	v, err := c.cache.Get(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s, ok := v.(*session)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (c *sessionCache) remove(id string) error {
	if err := c.cache.Remove(id); err != nil {
		return ErrSessionNotFound
	}
	return nil
}

func (c *sessionCache) count() int {
	return c.cache.Count()
}

func (c *sessionCache) close() {
	c.cache.Close()
}
