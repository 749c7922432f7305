package mysql

import (
	"context"

	"Buddy_Community/internal/model"

	"gorm.io/gorm"
)

// Pair 对账行
type Pair struct {
	ID        string
	LikeCount int64
}

// LikeKind 需要对账的实体及其点赞关系表
type LikeKind struct {
	Name   string
	Model  any
	Likes  any
	Column string
}

var (
	PostLikes    = LikeKind{Name: "post", Model: &model.Post{}, Likes: &model.PostLike{}, Column: "post_id"}
	CommentLikes = LikeKind{Name: "comment", Model: &model.Comment{}, Likes: &model.CommentLike{}, Column: "comment_id"}
)

type LikeCountReconcilerRepo struct {
	DB *gorm.DB
}

// ReconcileList 按 id 游标分批读取，返回下一批的起点
func (r *LikeCountReconcilerRepo) ReconcileList(ctx context.Context, kind LikeKind, batchSize int, lastID string) ([]Pair, string, error) {
	var list []Pair
	if err := r.DB.WithContext(ctx).Model(kind.Model).
		Select("id", "like_count").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealLikes 关系表里的真实点赞数
func (r *LikeCountReconcilerRepo) RealLikes(ctx context.Context, kind LikeKind, id string) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(kind.Likes).
		Where(kind.Column+" = ?", id).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Reconcile 修正计数，不改 updated_at
func (r *LikeCountReconcilerRepo) Reconcile(ctx context.Context, kind LikeKind, id string, n int64) error {
	return r.DB.WithContext(ctx).Model(kind.Model).Where("id = ?", id).
		UpdateColumn("like_count", n).Error
}
