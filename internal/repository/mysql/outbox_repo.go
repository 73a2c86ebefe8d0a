package mysql

import (
	"context"
	"time"

	"yatube/internal/model"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox 在业务事务内写入事件
func insertOutbox(tx *gorm.DB, event string, aggregateID uint64, data map[string]any) error {
	data["event_time"] = time.Now().UTC().Format(time.RFC3339Nano)
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ob := &model.Outbox{
		EventType:   event,
		AggregateID: aggregateID,
		Payload:     string(payload),
		Status:      model.OutboxPending,
	}
	return tx.Create(ob).Error
}

// List 待投递事件: pending 以及重试次数未超限的 failed
func (r *OutboxRepository) List(ctx context.Context, batchSize, maxRetry int) ([]model.Outbox, error) {
	var list []model.Outbox
	if err := r.DB.WithContext(ctx).
		Where("status = ? OR (status = ? AND retry < ?)", model.OutboxPending, model.OutboxFailed, maxRetry).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate outbox记录消息失败重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Outbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate outbox成功记录消息更新
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Outbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}

// DeleteSentBefore 清理已投递的旧事件
func (r *OutboxRepository) DeleteSentBefore(ctx context.Context, before time.Time) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.OutboxSent, before).
		Delete(&model.Outbox{})
	return tx.RowsAffected, tx.Error
}
