package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Buddy_Community/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox 和业务写入同一个事务
func insertOutbox(tx *gorm.DB, event, aggregateID, actorID string, fields map[string]any) error {
	body := map[string]any{
		"event":      event,
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"id":         aggregateID,
		"actor":      actorID,
	}
	for k, v := range fields {
		body[k] = v
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return tx.Create(&model.CommunityOutbox{
		EventType:   event,
		AggregateID: aggregateID,
		ActorID:     actorID,
		Payload:     string(payload),
		Status:      model.OutboxPending,
	}).Error
}

// List 待投递事件，按 id 顺序
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.CommunityOutbox, error) {
	var list []model.CommunityOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败，超过 maxRetry 标记为失败不再投递
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64, maxRetry int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CommunityOutbox{}).Where("id = ?", id).
			Update("retry", gorm.Expr("retry + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.CommunityOutbox{}).Where("id = ? AND retry >= ?", id, maxRetry).
			Update("status", model.OutboxFailed).Error
	})
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.CommunityOutbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
