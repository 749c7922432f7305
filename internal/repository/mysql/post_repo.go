package mysql

import (
	"context"
	"errors"

	"Buddy_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	DB *gorm.DB
}

// FindByID 带点赞和评论（评论按时间正序）；不存在返回 nil, nil
func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventPostCreated, post.ID, post.OwnerID, map[string]any{
			"community": post.CommunityID,
		})
	})
}

// Delete 硬删除，评论及点赞一并删除
func (r *PostRepository) Delete(ctx context.Context, id, actorID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deletePosts(tx, []string{id}); err != nil {
			return err
		}
		return insertOutbox(tx, model.EventPostDeleted, id, actorID, nil)
	})
}

// deletePosts 事务内批量删除帖子及其下属数据
func deletePosts(tx *gorm.DB, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	var commentIDs []string
	if err := tx.Model(&model.PostComment{}).Where("post_id IN ?", postIDs).Pluck("comment_id", &commentIDs).Error; err != nil {
		return err
	}
	if err := deleteComments(tx, commentIDs); err != nil {
		return err
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&model.PostLike{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", postIDs).Delete(&model.Post{}).Error
}
