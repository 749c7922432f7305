package mysql

import (
	"context"
	"errors"

	"Buddy_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func orderPosts(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// FindByID 带成员、帖子及帖子的点赞和评论；不存在返回 nil, nil
func (r *CommunityRepository) FindByID(ctx context.Context, id string) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).
		Preload("Members").
		Preload("Posts", orderPosts).
		Preload("Posts.Likes").
		Preload("Posts.Comments").
		Where("id = ?", id).
		First(&community).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// FindAll 列表只需要成员和帖子数量
func (r *CommunityRepository) FindAll(ctx context.Context) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.WithContext(ctx).
		Preload("Members").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "community_id")
		}).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// FindJoined 用户加入的全部社区
func (r *CommunityRepository) FindJoined(ctx context.Context, userID string) ([]model.Community, error) {
	var list []model.Community
	joined := r.DB.Model(&model.CommunityMember{}).Select("community_id").Where("user_id = ?", userID)
	err := r.DB.WithContext(ctx).
		Preload("Posts", orderPosts).
		Preload("Posts.Likes").
		Preload("Posts.Comments").
		Where("id IN (?)", joined).
		Find(&list).Error
	return list, err
}

// Create 社区和创建者的成员关系一起写入
func (r *CommunityRepository) Create(ctx context.Context, c *model.Community) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		mRepo := &CommunityMemberRepository{DB: tx}
		if _, err := mRepo.Join(c.ID, c.OwnerID); err != nil {
			return err
		}
		return insertOutbox(tx, model.EventCommunityCreated, c.ID, c.OwnerID, map[string]any{
			"name": c.Name,
		})
	})
}

// Delete 硬删除，帖子、评论和所有关系一并删除
func (r *CommunityRepository) Delete(ctx context.Context, id, actorID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []string
		if err := tx.Model(&model.Post{}).Where("community_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := deletePosts(tx, postIDs); err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", id).Delete(&model.CommunityMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&model.Community{}).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventCommunityDeleted, id, actorID, map[string]any{
			"posts": len(postIDs),
		})
	})
}

// AddMember 已是成员时 changed=false，不写事件
func (r *CommunityRepository) AddMember(ctx context.Context, communityID, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if changed, err = (&CommunityMemberRepository{DB: tx}).Join(communityID, userID); err != nil || !changed {
			return err
		}
		return insertOutbox(tx, model.EventCommunityJoined, communityID, userID, nil)
	})
	return changed, err
}

func (r *CommunityRepository) RemoveMember(ctx context.Context, communityID, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if changed, err = (&CommunityMemberRepository{DB: tx}).Leave(communityID, userID); err != nil || !changed {
			return err
		}
		return insertOutbox(tx, model.EventCommunityLeft, communityID, userID, nil)
	})
	return changed, err
}
