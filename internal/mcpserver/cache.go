package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/swagg-dev/swagg/parser"
)

// docCache keeps parsed documents between tool calls. It is bounded by
// capacity with least-recently-used eviction, and each entry expires after
// its own TTL.
type docCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	items    map[string]*list.Element
	running  bool
}

type cached struct {
	key     string
	result  *parser.ParseResult
	expires time.Time
}

func newDocCache(capacity int) *docCache {
	return &docCache{capacity: capacity, order: list.New(), items: make(map[string]*list.Element)}
}

// documents is shared by every tool of the process.
var documents = newDocCache(cfg.CacheMaxSize)

func (c *docCache) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil
	}
	entry := el.Value.(*cached)
	if time.Now().After(entry.expires) {
		c.remove(el)
		return nil
	}
	c.order.MoveToFront(el)
	return entry.result
}

func (c *docCache) put(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := &cached{key: key, result: result, expires: time.Now().Add(ttl)}
	if el, ok := c.items[key]; ok {
		el.Value = entry
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(entry)
	c.trim()
}

// resize changes the capacity, evicting the least recently used entries
// that no longer fit.
func (c *docCache) resize(capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capacity = capacity
	c.trim()
}

func (c *docCache) trim() {
	for c.order.Len() > max(c.capacity, 0) {
		c.remove(c.order.Back())
	}
}

func (c *docCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*cached).key)
}

// sweep drops the entries expired at now.
func (c *docCache) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*cached).expires) {
			c.remove(el)
		}
		el = next
	}
}

// run sweeps every interval until ctx is done. Only one sweeper runs at a
// time; extra calls return immediately.
func (c *docCache) run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.running = false
			c.mu.Unlock()
		}()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				c.sweep(now)
			}
		}
	}()
}

func (c *docCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
}

func (c *docCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
