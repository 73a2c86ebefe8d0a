package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCodeTTL  = 5 * time.Minute
	CodePrefix      = "email:code"
	CodeResetScope  = "reset"
	PendingSuffix   = "pending"
	ConfirmedSuffix = "confirmed"
	AttemptsSuffix  = "attempts"

	// MaxCodeAttempts 输错次数达到上限后验证码作废
	MaxCodeAttempts = 5
)

var (
	ErrCodeNotFound        = errors.New("code not found")
	ErrCodeDelFailed       = errors.New("code delete failed")
	ErrCodePendingFailed   = errors.New("code pending failed")
	ErrCodeConfirmedFailed = errors.New("code confirmed failed")
)

// 原子执行: 取值 + 写入目标 + 设置 TTL + 删除源
var confirmScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`)

// CodeRepository 邮件验证码, 先写 pending, 邮件发出后转为 confirmed
type CodeRepository struct {
	Client *redis.Client
}

func codeKey(scope, suffix, email string) string {
	return fmt.Sprintf("%s:%s:%s:%s", CodePrefix, scope, suffix, email)
}

func (r *CodeRepository) SavePending(ctx context.Context, scope, email, code string) error {
	if err := r.Client.Set(ctx, codeKey(scope, PendingSuffix, email), code, DefaultCodeTTL).Err(); err != nil {
		return ErrCodePendingFailed
	}
	return nil
}

// Confirm 将 pending 转为 confirmed 并重置 TTL
func (r *CodeRepository) Confirm(ctx context.Context, scope, email string) error {
	keys := []string{codeKey(scope, PendingSuffix, email), codeKey(scope, ConfirmedSuffix, email)}
	px := int64(DefaultCodeTTL / time.Millisecond)
	ok, err := confirmScript.Run(ctx, r.Client, keys, px).Int()
	if err != nil || ok != 1 {
		return ErrCodeConfirmedFailed
	}
	return nil
}

// DeletePending 删除 pending 键（幂等）
func (r *CodeRepository) DeletePending(ctx context.Context, scope, email string) error {
	if err := r.Client.Del(ctx, codeKey(scope, PendingSuffix, email)).Err(); err != nil {
		return ErrCodeDelFailed
	}
	return nil
}

func (r *CodeRepository) GetConfirmed(ctx context.Context, scope, email string) (string, error) {
	val, err := r.Client.Get(ctx, codeKey(scope, ConfirmedSuffix, email)).Result()
	if err != nil {
		return "", ErrCodeNotFound
	}
	return val, nil
}

// DeleteConfirmed 删除验证码及其输错计数
func (r *CodeRepository) DeleteConfirmed(ctx context.Context, scope, email string) error {
	err := r.Client.Del(ctx, codeKey(scope, ConfirmedSuffix, email), codeKey(scope, AttemptsSuffix, email)).Err()
	if err != nil {
		return ErrCodeDelFailed
	}
	return nil
}

// IncrAttempts 输错次数加一, 计数与验证码同时过期
func (r *CodeRepository) IncrAttempts(ctx context.Context, scope, email string) (int64, error) {
	key := codeKey(scope, AttemptsSuffix, email)
	n, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err = r.Client.Expire(ctx, key, DefaultCodeTTL).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// ResetAttempts 新验证码发出后清零
func (r *CodeRepository) ResetAttempts(ctx context.Context, scope, email string) error {
	if err := r.Client.Del(ctx, codeKey(scope, AttemptsSuffix, email)).Err(); err != nil {
		return ErrCodeDelFailed
	}
	return nil
}
