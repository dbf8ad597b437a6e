package cache

import (
	"errors"
	"fmt"
	"fxconvert/internal/conversion"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

var ErrSessionRejected = errors.New("session rejected by cache")

// RistrettoSessionCache keeps live conversion sessions in memory.
// Each session costs 1, so maxItems bounds the number of live sessions.
// Entries expire after ttl; when capacity is reached ristretto evicts by admission policy.
type RistrettoSessionCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewSessionCache(maxItems int64, ttl time.Duration) (*RistrettoSessionCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache failed: %w", err)
	}
	return &RistrettoSessionCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoSessionCache) Get(id uuid.UUID) (*conversion.Session, bool) {
	if v, ok := c.cache.Get(id.String()); ok {
		s, ok := v.(*conversion.Session)
		return s, ok
	}
	return nil, false
}

// Set stores the session and waits until it is visible to Get.
// ErrSessionRejected is returned when the cache dropped the write or the admission policy refused it.
func (c *RistrettoSessionCache) Set(id uuid.UUID, session *conversion.Session) error {
	if !c.cache.SetWithTTL(id.String(), session, 1, c.ttl) {
		return ErrSessionRejected
	}
	c.cache.Wait()
	if got, ok := c.Get(id); !ok || got != session {
		return ErrSessionRejected
	}
	return nil
}

func (c *RistrettoSessionCache) Delete(id uuid.UUID) { c.cache.Del(id.String()) }

func (c *RistrettoSessionCache) Close() { c.cache.Close() }
