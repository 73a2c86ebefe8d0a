package job

import (
	"context"
	log "log/slog"
	"time"

	"yatube/internal/repository/mysql"

	"gorm.io/gorm"
)

// OutboxCleanupJob 删除超过保留天数的已投递事件
type OutboxCleanupJob struct {
	repo      *mysql.OutboxRepository
	retention time.Duration
	now       func() time.Time
}

func NewOutboxCleanupJob(db *gorm.DB, retentionDays int) *OutboxCleanupJob {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &OutboxCleanupJob{
		repo:      &mysql.OutboxRepository{DB: db},
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// Run 实现 cron.Job
func (j *OutboxCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := j.repo.DeleteSentBefore(ctx, j.now().Add(-j.retention))
	if err != nil {
		log.Error("outbox cleanup failed", "err", err)
		return
	}
	log.Info("outbox cleanup done", "removed", removed)
}
