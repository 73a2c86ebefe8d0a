package service_test

import (
	"context"
	"errors"
	"testing"

	"yatube/internal/config"
	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRelayerDrainOnce(t *testing.T) {
	db := testutil.NewDB(t)
	follows := service.NewFollowService(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "user")
	author := testutil.CreateUser(t, db, "auth")
	user := testutil.CreateUser(t, db, "reader")
	_, err := follows.Follow(ctx, user.ID, author.Username)
	require.NoError(t, err)

	var delivered []string
	fail := true
	sender := func(_ context.Context, ob *model.Outbox) error {
		if fail {
			return errors.New("broker down")
		}
		delivered = append(delivered, ob.EventType)
		return nil
	}
	relayer := service.NewOutboxRelayer(db, config.OutboxConfig{BatchSize: 10, MaxRetry: 2}, sender)

	assert.Zero(t, relayer.DrainOnce(ctx))
	var ob model.Outbox
	require.NoError(t, db.First(&ob).Error)
	assert.Equal(t, model.OutboxFailed, ob.Status)
	assert.Equal(t, 1, ob.Retry)

	fail = false
	assert.Equal(t, 1, relayer.DrainOnce(ctx))
	assert.Equal(t, []string{model.EventFollow}, delivered)

	require.NoError(t, db.First(&ob).Error)
	assert.Equal(t, model.OutboxSent, ob.Status)

	assert.Zero(t, relayer.DrainOnce(ctx))
}

func TestOutboxRelayerGivesUp(t *testing.T) {
	db := testutil.NewDB(t)
	follows := service.NewFollowService(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user")
	testutil.CreateUser(t, db, "auth")
	_, err := follows.Follow(ctx, user.ID, "auth")
	require.NoError(t, err)

	calls := 0
	relayer := service.NewOutboxRelayer(db, config.OutboxConfig{BatchSize: 10, MaxRetry: 2}, func(context.Context, *model.Outbox) error {
		calls++
		return errors.New("broker down")
	})
	for i := 0; i < 5; i++ {
		relayer.DrainOnce(ctx)
	}
	assert.Equal(t, 2, calls)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, 404, service.StatusOf(service.ErrPostNotFound))
	assert.Equal(t, 404, service.StatusOf(errors.Join(errors.New("ctx"), service.ErrGroupNotFound)))
	assert.Equal(t, 500, service.StatusOf(errors.New("boom")))
}
