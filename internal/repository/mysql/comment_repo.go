package mysql

import (
	"context"
	"errors"

	"Buddy_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.WithContext(ctx).Preload("Likes").Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create 评论挂到帖子下，归属关系创建后不再变化
func (r *CommentRepository) Create(ctx context.Context, postID string, c *model.Comment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.PostComment{PostID: postID, CommentID: c.ID}).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventCommentCreated, c.ID, c.OwnerID, map[string]any{
			"post": postID,
		})
	})
}

func (r *CommentRepository) Delete(ctx context.Context, id, actorID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteComments(tx, []string{id}); err != nil {
			return err
		}
		return insertOutbox(tx, model.EventCommentDeleted, id, actorID, nil)
	})
}

func deleteComments(tx *gorm.DB, commentIDs []string) error {
	if len(commentIDs) == 0 {
		return nil
	}
	if err := tx.Where("comment_id IN ?", commentIDs).Delete(&model.CommentLike{}).Error; err != nil {
		return err
	}
	if err := tx.Where("comment_id IN ?", commentIDs).Delete(&model.PostComment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", commentIDs).Delete(&model.Comment{}).Error
}
