package common

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache counts flushes so a read-through fill started before a write can be dropped.
type Cache struct {
	*cache.Cache
	mu  sync.RWMutex
	gen uint64
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{Cache: cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.Cache.Flush()
}

// Generation returns the number of flushes so far. Read it before loading the value to cache.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetIfGeneration stores value with the default expiration unless Flush ran after gen was read.
func (c *Cache) SetIfGeneration(gen uint64, key string, value interface{}) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.gen != gen {
		return false
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
	return true
}

func CacheKeyBlog(id string) string {
	return "blog:" + id
}

func CacheKeyBlogs(page, limit int, tag string) string {
	return "blogs:" + strconv.Itoa(page) + ":" + strconv.Itoa(limit) + ":" + tag
}
