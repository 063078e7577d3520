package cache

import (
	"cryptodesk/internal/domain"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoUserCache keeps recently looked up users by username.
// Users are read-only here, so entries only expire.
type RistrettoUserCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewUserCache(maxItems int64, ttl time.Duration) (*RistrettoUserCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create user cache failed: %w", err)
	}
	return &RistrettoUserCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoUserCache) Get(username string) (domain.User, bool) {
	if v, ok := c.cache.Get(toKey(username)); ok {
		user, ok := v.(domain.User)
		return user, ok
	}
	return domain.User{}, false
}

func (c *RistrettoUserCache) Set(user domain.User) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(toKey(user.Username), user, 1, c.ttl)
		return
	}
	c.cache.Set(toKey(user.Username), user, 1)
}

func (c *RistrettoUserCache) Close() { c.cache.Close() }

func toKey(username string) string { return strings.ToLower(strings.TrimSpace(username)) }
