package intent

import (
	"container/list"
	"sync"
)

// cache is a bounded LRU of normalized message to intent. LLM labels for
// repeated messages ("locker hours", "menu") are served without an API
// call.
type cache struct {
	mu      sync.Mutex
	max     int
	order   *list.List
	entries map[string]*list.Element
}

type cacheEntry struct {
	key    string
	intent Intent
}

func newCache(maxEntries int) *cache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &cache{
		max:     maxEntries,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func (c *cache) get(key string) (Intent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).intent, true
}

func (c *cache) put(key string, intent Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).intent = intent
		return
	}
	elem := c.order.PushFront(&cacheEntry{key: key, intent: intent})
	c.entries[key] = elem
	if c.order.Len() > c.max {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
