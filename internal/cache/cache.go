// Package cache 列表页整页缓存.
package cache

import (
	"context"
	"fmt"
	"time"

	"yatube/internal/config"
	"yatube/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
)

// PageCache 按 key 保存渲染好的页面, 写入后在 ttl 内原样返回
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// Key 由视图名、页码和访问者组成, 未登录访问者为 0
func Key(view string, page int, viewerID uint64) string {
	return fmt.Sprintf("%s:%d:%d", view, page, viewerID)
}

// New 按配置选择 redis 或进程内缓存
func New(cfg config.CacheConfig, client *goredis.Client) (PageCache, error) {
	switch cfg.Driver {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("cache driver redis requires a redis client")
		}
		return &redis.PageCache{Client: client}, nil
	case "memory", "":
		return NewLocalPageCache(cfg.Size, cfg.IndexTTLDuration()), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}
