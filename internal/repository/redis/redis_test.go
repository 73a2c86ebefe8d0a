package redis_test

import (
	"context"
	"testing"
	"time"

	"yatube/internal/repository/redis"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	mr, client := testutil.NewRedis(t)
	repo := &redis.SessionRepository{Client: client, TTL: time.Hour}
	ctx := context.Background()

	_, err := repo.AccessToken(ctx, 1)
	assert.ErrorIs(t, err, redis.ErrTokenNotFound)

	require.NoError(t, repo.Save(ctx, 1, "a1", "r1"))
	access, err := repo.AccessToken(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a1", access)
	refresh, err := repo.RefreshToken(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "r1", refresh)

	mr.FastForward(30 * time.Minute)
	require.NoError(t, repo.Extend(ctx, 1))
	mr.FastForward(45 * time.Minute)
	_, err = repo.AccessToken(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1))
	_, err = repo.RefreshToken(ctx, 1)
	assert.ErrorIs(t, err, redis.ErrTokenNotFound)
}

func TestCodeRepositoryTwoPhase(t *testing.T) {
	mr, client := testutil.NewRedis(t)
	repo := &redis.CodeRepository{Client: client}
	ctx := context.Background()
	const email = "user@example.com"

	require.NoError(t, repo.SavePending(ctx, redis.CodeResetScope, email, "123456"))
	_, err := repo.GetConfirmed(ctx, redis.CodeResetScope, email)
	assert.ErrorIs(t, err, redis.ErrCodeNotFound)

	require.NoError(t, repo.Confirm(ctx, redis.CodeResetScope, email))
	code, err := repo.GetConfirmed(ctx, redis.CodeResetScope, email)
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	// pending 已被移走
	assert.ErrorIs(t, repo.Confirm(ctx, redis.CodeResetScope, email), redis.ErrCodeConfirmedFailed)

	mr.FastForward(redis.DefaultCodeTTL + time.Second)
	_, err = repo.GetConfirmed(ctx, redis.CodeResetScope, email)
	assert.ErrorIs(t, err, redis.ErrCodeNotFound)
}

func TestCodeRepositoryAttempts(t *testing.T) {
	mr, client := testutil.NewRedis(t)
	repo := &redis.CodeRepository{Client: client}
	ctx := context.Background()
	const email = "user@example.com"

	for want := int64(1); want <= 3; want++ {
		n, err := repo.IncrAttempts(ctx, redis.CodeResetScope, email)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	require.NoError(t, repo.ResetAttempts(ctx, redis.CodeResetScope, email))
	n, err := repo.IncrAttempts(ctx, redis.CodeResetScope, email)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// 计数随验证码一起过期
	mr.FastForward(redis.DefaultCodeTTL + time.Second)
	n, err = repo.IncrAttempts(ctx, redis.CodeResetScope, email)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, repo.DeleteConfirmed(ctx, redis.CodeResetScope, email))
	n, err = repo.IncrAttempts(ctx, redis.CodeResetScope, email)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPageCacheExpires(t *testing.T) {
	mr, client := testutil.NewRedis(t)
	pc := &redis.PageCache{Client: client}
	ctx := context.Background()

	_, ok, err := pc.Get(ctx, "index:1:0")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, pc.Set(ctx, "index:1:0", []byte("<html>"), 20*time.Second))
	body, ok, err := pc.Get(ctx, "index:1:0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<html>", string(body))

	mr.FastForward(21 * time.Second)
	_, ok, err = pc.Get(ctx, "index:1:0")
	require.NoError(t, err)
	assert.False(t, ok)
}
