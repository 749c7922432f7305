package service

import (
	"context"
	"time"

	"Buddy_Community/internal/metrics"
	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"

	"go.uber.org/zap"
)

type OutboxStore interface {
	List(ctx context.Context, batchSize int) ([]model.CommunityOutbox, error)
	RetryUpdate(ctx context.Context, id uint64, maxRetry int) error
	SuccessUpdate(ctx context.Context, id uint64) error
}

type Sender func(ctx context.Context, ob *model.CommunityOutbox) error

// OutboxRelayer 轮询 outbox 表，把社区事件投递出去
type OutboxRelayer struct {
	repo      OutboxStore
	batchSize int
	maxRetry  int
	interval  time.Duration
	sender    Sender
	log       *zap.Logger
}

func NewOutboxRelayer(repo OutboxStore, sender Sender, interval time.Duration, log *zap.Logger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		maxRetry:  10,
		interval:  interval,
		sender:    sender,
		log:       log,
	}
}

// Run 阻塞直到 ctx 取消
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// drainOnce 返回成功投递的条数
func (r *OutboxRelayer) drainOnce(ctx context.Context) int {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		r.log.Error("outbox query failed", zap.Error(err))
		return 0
	}
	sent := 0
	for i := range rows {
		ob := &rows[i]
		err = r.sender(ctx, ob)
		metrics.RecordOutbox(ob.EventType, err)
		if err != nil {
			r.log.Warn("outbox send failed", zap.Uint64("id", ob.ID), zap.String("event", ob.EventType), zap.Error(err))
			if err = r.repo.RetryUpdate(ctx, ob.ID, r.maxRetry); err != nil {
				r.log.Error("outbox retry update failed", zap.Uint64("id", ob.ID), zap.Error(err))
			}
			continue
		}
		if err = r.repo.SuccessUpdate(ctx, ob.ID); err != nil {
			r.log.Error("outbox success update failed", zap.Uint64("id", ob.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// KafkaSender 以聚合 id 作为 key，同一社区/帖子的事件保持顺序
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.CommunityOutbox) error {
		return p.Send(ctx, ob.AggregateID, []byte(ob.Payload), map[string]string{
			"event": ob.EventType,
			"actor": ob.ActorID,
		})
	}
}

// LogSender 没有配置 Kafka 时只打日志
func LogSender(log *zap.Logger) Sender {
	return func(ctx context.Context, ob *model.CommunityOutbox) error {
		log.Info("outbox event",
			zap.String("event", ob.EventType),
			zap.String("aggregate", ob.AggregateID),
			zap.String("actor", ob.ActorID),
			zap.String("payload", ob.Payload),
		)
		return nil
	}
}
