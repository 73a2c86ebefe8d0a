// Package storage 帖子图片存储
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"yatube/internal/config"

	"github.com/google/uuid"
)

// Store 保存上传文件, 返回相对路径; URL 把相对路径转成可访问地址
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	URL(key string) string
}

// ObjectKey posts/2006/01/02/<uuid><ext>
func ObjectKey(ext string, now time.Time) string {
	return path.Join("posts", now.Format("2006/01/02"), uuid.NewString()+ext)
}

// New 按配置选择本地目录或 minio
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalStore(cfg.MediaRoot, cfg.MediaURL), nil
	case "minio":
		return NewMinioStore(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
