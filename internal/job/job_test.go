package job

import (
	"context"
	"testing"
	"time"

	"yatube/internal/model"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxCleanupJob(t *testing.T) {
	db := testutil.NewDB(t)
	old := time.Now().Add(-10 * 24 * time.Hour)
	rows := []model.Outbox{
		{EventType: model.EventFollow, Payload: "{}", Status: model.OutboxSent, CreatedAt: old},
		{EventType: model.EventFollow, Payload: "{}", Status: model.OutboxPending, CreatedAt: old},
		{EventType: model.EventFollow, Payload: "{}", Status: model.OutboxSent},
	}
	require.NoError(t, db.WithContext(context.Background()).Create(&rows).Error)

	NewOutboxCleanupJob(db, 7).Run()

	var left []model.Outbox
	require.NoError(t, db.Order("id").Find(&left).Error)
	require.Len(t, left, 2)
	assert.Equal(t, rows[1].ID, left[0].ID)
	assert.Equal(t, rows[2].ID, left[1].ID)
}

func TestManagerRegistersJobs(t *testing.T) {
	db := testutil.NewDB(t)
	m := NewCronManager("", NewOutboxCleanupJob(db, 0))
	require.NoError(t, m.RegisterJobs())
	assert.Equal(t, 1, m.Entries())

	bad := NewCronManager("every other tuesday", NewOutboxCleanupJob(db, 0))
	assert.Error(t, bad.RegisterJobs())
}
