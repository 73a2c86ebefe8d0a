package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"yatube/internal/cache"
	"yatube/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type bodyWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage 缓存 GET 200 响应, key 为 (view, 页码, 访问者); 写操作不会使缓存失效
func CachePage(pc cache.PageCache, view string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		page, err := strconv.Atoi(c.Query("page"))
		if err != nil || page < 1 {
			page = 1
		}
		key := cache.Key(view, page, UserID(c))
		ctx := c.Request.Context()

		body, ok, err := pc.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "page cache get failed", "key", key, "err", err)
		}
		if ok {
			metrics.PageCacheLookups.WithLabelValues(view, "hit").Inc()
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}
		metrics.PageCacheLookups.WithLabelValues(view, "miss").Inc()

		w := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK {
			return
		}
		if err = pc.Set(ctx, key, w.buf.Bytes(), ttl); err != nil {
			slog.WarnContext(ctx, "page cache set failed", "key", key, "err", err)
		}
	}
}
