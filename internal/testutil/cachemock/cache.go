package cachemock

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Cache: кеш в памяти с поведением Redis для ключей, счётчиков и множеств.
// Now задаёт часы для истечения ключей.
type Cache struct {
	mu   sync.Mutex
	data map[string]entry
	sets map[string]map[string]struct{}
	Now  func() time.Time
}

func New() *Cache {
	return &Cache{
		data: make(map[string]entry),
		sets: make(map[string]map[string]struct{}),
		Now:  time.Now,
	}
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func (c *Cache) alive(key string) (entry, bool) {
	e, ok := c.data[key]
	if !ok {
		return entry{}, false
	}
	if !e.expiresAt.IsZero() && !c.Now().Before(e.expiresAt) {
		delete(c.data, key)
		return entry{}, false
	}
	return e, true
}

func (c *Cache) expiry(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return c.Now().Add(d)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{value: toString(value), expiresAt: c.expiry(expiration)}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.alive(key)
	if !ok {
		return "", redis.Nil
	}
	return e.value, nil
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		delete(c.sets, k)
	}
	return nil
}

func (c *Cache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, _ := c.alive(key)
	n, _ := strconv.ParseInt(e.value, 10, 64)
	n++
	e.value = strconv.FormatInt(n, 10)
	c.data[key] = e
	return n, nil
}

func (c *Cache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.alive(key)
	if !ok {
		_, isSet := c.sets[key]
		return isSet, nil
	}
	e.expiresAt = c.expiry(expiration)
	c.data[key] = e
	return true, nil
}

func (c *Cache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.alive(key); ok {
		return false, nil
	}
	c.data[key] = entry{value: toString(value), expiresAt: c.expiry(expiration)}
	return true, nil
}

func (c *Cache) SAdd(ctx context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.sets[key]
	if !ok {
		set = make(map[string]struct{})
		c.sets[key] = set
	}
	for _, m := range members {
		set[toString(m)] = struct{}{}
	}
	return nil
}

func (c *Cache) SMembers(ctx context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.sets[key]))
	for m := range c.sets[key] {
		out = append(out, m)
	}
	return out, nil
}

func (c *Cache) SRem(ctx context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range members {
		delete(c.sets[key], toString(m))
	}
	return nil
}

// Has сообщает, есть ли живой ключ.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.alive(key)
	return ok
}
