package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"yatube/internal/config"
	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/pkg/metrics"
	"yatube/internal/repository/mysql"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.Outbox) error

// OutboxRelayer 从 outbox 表读取事件异步投递
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	maxRetry  int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, cfg config.OutboxConfig, sender Sender) *OutboxRelayer {
	r := &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: cfg.BatchSize,
		maxRetry:  cfg.MaxRetry,
		interval:  cfg.IntervalDuration(),
		sender:    sender,
	}
	if r.batchSize <= 0 {
		r.batchSize = 200
	}
	if r.maxRetry <= 0 {
		r.maxRetry = 5
	}
	if r.interval <= 0 {
		r.interval = time.Second
	}
	return r
}

// Run 直到 ctx 取消
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce 投递一批, 返回成功条数
func (r *OutboxRelayer) DrainOnce(ctx context.Context) int {
	rows, err := r.repo.List(ctx, r.batchSize, r.maxRetry)
	if err != nil {
		slog.ErrorContext(ctx, "outbox query failed", "err", err)
		return 0
	}
	sent := 0
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			slog.WarnContext(ctx, "outbox send failed", "id", ob.ID, "event", ob.EventType, "retry", ob.Retry, "err", err)
			metrics.OutboxEvents.WithLabelValues(ob.EventType, "failed").Inc()
			if err = r.repo.RetryUpdate(ctx, ob.ID); err != nil {
				slog.ErrorContext(ctx, "outbox retry update failed", "id", ob.ID, "err", err)
			}
			continue
		}
		metrics.OutboxEvents.WithLabelValues(ob.EventType, "sent").Inc()
		if err = r.repo.SuccessUpdate(ctx, ob.ID); err != nil {
			slog.ErrorContext(ctx, "outbox success update failed", "id", ob.ID, "err", err)
			continue
		}
		sent++
	}
	return sent
}

// LogSender 未配置 kafka 时只打印
func LogSender(ctx context.Context, ob *model.Outbox) error {
	slog.InfoContext(ctx, "outbox event", "type", ob.EventType, "aggregate_id", ob.AggregateID, "payload", ob.Payload)
	return nil
}

// KafkaSender 以聚合 id 为 key 写入 kafka
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.Outbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.AggregateID), []byte(ob.Payload), map[string]string{
			"event_type": ob.EventType,
			"outbox_id":  strconv.FormatUint(ob.ID, 10),
		})
	}
}
