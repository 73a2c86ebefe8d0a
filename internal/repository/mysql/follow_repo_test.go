package mysql_test

import (
	"context"
	"testing"
	"time"

	"yatube/internal/model"
	"yatube/internal/repository/mysql"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &mysql.FollowRepository{DB: db}
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user")
	author := testutil.CreateUser(t, db, "auth")

	changed, err := repo.Follow(ctx, user.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Follow(ctx, user.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.EqualValues(t, 1, testutil.CountFollows(t, db))

	ok, err := repo.IsFollowing(ctx, user.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsFollowing(ctx, author.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	followers, err := repo.CountFollowers(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers)

	followings, err := repo.CountFollowings(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followings)
}

func TestFollowSelfRejected(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &mysql.FollowRepository{DB: db}

	user := testutil.CreateUser(t, db, "user")
	_, err := repo.Follow(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, mysql.ErrFollowSelf)
	assert.Zero(t, testutil.CountFollows(t, db))
}

func TestUnfollow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &mysql.FollowRepository{DB: db}
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user")
	author := testutil.CreateUser(t, db, "auth")

	changed, err := repo.Unfollow(ctx, user.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	testutil.Follow(t, db, user, author)
	changed, err = repo.Unfollow(ctx, user.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Zero(t, testutil.CountFollows(t, db))
}

func TestOutboxLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	follows := &mysql.FollowRepository{DB: db}
	outbox := &mysql.OutboxRepository{DB: db}
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user")
	author := testutil.CreateUser(t, db, "auth")
	_, err := follows.Follow(ctx, user.ID, author.ID)
	require.NoError(t, err)
	_, err = follows.Unfollow(ctx, user.ID, author.ID)
	require.NoError(t, err)

	rows, err := outbox.List(ctx, 10, 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.EventFollow, rows[0].EventType)
	assert.Equal(t, model.EventUnfollow, rows[1].EventType)
	assert.Contains(t, rows[0].Payload, `"user_id"`)

	require.NoError(t, outbox.SuccessUpdate(ctx, rows[0].ID))
	for i := 0; i < 5; i++ {
		require.NoError(t, outbox.RetryUpdate(ctx, rows[1].ID))
	}

	rows, err = outbox.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, rows)

	removed, err := outbox.DeleteSentBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}
