package mysql

import (
	"context"

	"Buddy_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostLikeRepository 帖子和评论的点赞
type PostLikeRepository struct {
	DB *gorm.DB
}

// LikePost 已点过赞时 changed=false；like_count 在同一事务内按关系表重算
func (r *PostLikeRepository) LikePost(ctx context.Context, postID, userID string) (bool, error) {
	return r.like(ctx, likeTarget{
		row:    &model.PostLike{PostID: postID, UserID: userID},
		owner:  &model.Post{},
		likes:  &model.PostLike{},
		column: "post_id",
		event:  model.EventPostLiked,
	}, postID, userID)
}

func (r *PostLikeRepository) LikeComment(ctx context.Context, commentID, userID string) (bool, error) {
	return r.like(ctx, likeTarget{
		row:    &model.CommentLike{CommentID: commentID, UserID: userID},
		owner:  &model.Comment{},
		likes:  &model.CommentLike{},
		column: "comment_id",
		event:  model.EventCommentLiked,
	}, commentID, userID)
}

type likeTarget struct {
	row    any
	owner  any
	likes  any
	column string
	event  string
}

func (r *PostLikeRepository) like(ctx context.Context, t likeTarget, id, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(t.row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		count := tx.Model(t.likes).Select("count(*)").Where(t.column+" = ?", id)
		if err := tx.Model(t.owner).Where("id = ?", id).Update("like_count", count).Error; err != nil {
			return err
		}
		return insertOutbox(tx, t.event, id, userID, nil)
	})
	return changed, err
}
