package service

import (
	"context"

	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/view"
)

// LikePost 不可重复点赞；计数由存储在同一事务内重算
func (s *CommunityService) LikePost(ctx context.Context, actor *model.User, postID string) (err error) {
	defer observe("likePost", &err)
	p, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if err = s.rules.CanLikePost(actor, p); err != nil {
		return err
	}
	changed, err := s.likes.LikePost(ctx, p.ID, actor.ID)
	if err != nil {
		return err
	}
	if !changed {
		return pkg.ErrAlreadyLiked
	}
	return nil
}

func (s *CommunityService) LikeComment(ctx context.Context, actor *model.User, commentID string) (err error) {
	defer observe("likeComment", &err)
	c, err := s.loadComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err = s.rules.CanLikeComment(actor, c); err != nil {
		return err
	}
	changed, err := s.likes.LikeComment(ctx, c.ID, actor.ID)
	if err != nil {
		return err
	}
	if !changed {
		return pkg.ErrAlreadyLiked
	}
	return nil
}

// GetPostLikes 点赞列表里帖子作者标记为 owner
func (s *CommunityService) GetPostLikes(ctx context.Context, postID string) (out []view.Member, err error) {
	defer observe("getPostLikes", &err)
	p, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.projector.Members(ctx, p.Likes, p.OwnerID)
}

func (s *CommunityService) GetCommentLikes(ctx context.Context, commentID string) (out []view.Member, err error) {
	defer observe("getCommentLikes", &err)
	c, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return s.projector.Members(ctx, c.Likes, c.OwnerID)
}
