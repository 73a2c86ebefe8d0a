// Package testutil 测试用的数据库、redis 和数据构造
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"yatube/internal/config"
	"yatube/internal/model"
	"yatube/internal/repository/mysql"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const Password = "Passw0rd!"

// SmallGIF 2x1 gif
var SmallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

var seq atomic.Int64

// NewDB 独立的 sqlite 内存库, 已建表
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := mysql.InitDB(config.DBConfig{
		Driver:   "sqlite",
		DSN:      "file::memory:?_foreign_keys=on",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, mysql.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewRedis miniredis 及连接它的客户端
func NewRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username: username,
		Password: string(hash),
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateGroup(t *testing.T, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{
		Title:       "Группа " + slug,
		Slug:        slug,
		Description: "Описание " + slug,
	}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePost 每次调用的 created_at 严格递增
func CreatePost(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, text string) *model.Post {
	t.Helper()
	p := &model.Post{
		Authored: model.Authored{
			AuthorID:  author.ID,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(seq.Add(1)) * time.Second),
		},
		Text: text,
	}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
	return p
}

func CreatePosts(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	posts := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, CreatePost(t, db, author, group, fmt.Sprintf("Тестовый пост %d", i)))
	}
	return posts
}

func Follow(t *testing.T, db *gorm.DB, user, author *model.User) {
	t.Helper()
	require.NoError(t, db.Omit("User", "Author").Create(&model.Follow{UserID: user.ID, AuthorID: author.ID}).Error)
}

func CountFollows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.WithContext(context.Background()).Model(&model.Follow{}).Count(&n).Error)
	return n
}
