package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type entry struct {
	body     []byte
	deadline time.Time
}

// LocalPageCache 进程内 LRU, 每个条目按 Set 时给出的 ttl 过期
type LocalPageCache struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

func NewLocalPageCache(size int, maxTTL time.Duration) *LocalPageCache {
	if size <= 0 {
		size = 1024
	}
	return &LocalPageCache{
		lru: expirable.NewLRU[string, entry](size, nil, maxTTL),
		now: time.Now,
	}
}

func (c *LocalPageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.deadline) {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return e.body, true, nil
}

func (c *LocalPageCache) Set(_ context.Context, key string, body []byte, ttl time.Duration) error {
	c.lru.Add(key, entry{body: body, deadline: c.now().Add(ttl)})
	return nil
}
