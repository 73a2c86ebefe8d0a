package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	UserTokenPrefix = "login:user:token"

	fieldAccess  = "access"
	fieldRefresh = "refresh"
)

// SessionRepository 每个用户一组有效的 access/refresh token, 新登录会顶掉旧会话
type SessionRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func tokenKey(usrID uint64) string {
	return fmt.Sprintf("%s:%d", UserTokenPrefix, usrID)
}

func (r *SessionRepository) Save(ctx context.Context, usrID uint64, access, refresh string) error {
	key := tokenKey(usrID)
	pipe := r.Client.TxPipeline()
	pipe.HSet(ctx, key, fieldAccess, access, fieldRefresh, refresh)
	pipe.Expire(ctx, key, r.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) get(ctx context.Context, usrID uint64, field string) (string, error) {
	token, err := r.Client.HGet(ctx, tokenKey(usrID), field).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *SessionRepository) AccessToken(ctx context.Context, usrID uint64) (string, error) {
	return r.get(ctx, usrID, fieldAccess)
}

func (r *SessionRepository) RefreshToken(ctx context.Context, usrID uint64) (string, error) {
	return r.get(ctx, usrID, fieldRefresh)
}

func (r *SessionRepository) Extend(ctx context.Context, usrID uint64) error {
	if err := r.Client.Expire(ctx, tokenKey(usrID), r.TTL).Err(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, usrID uint64) error {
	if err := r.Client.Del(ctx, tokenKey(usrID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
