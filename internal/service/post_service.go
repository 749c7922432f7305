package service

import (
	"context"

	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/view"
)

type CreatePostInput struct {
	CommunityID string
	Title       string
	Body        string
	Picture     string
}

type CreateCommentInput struct {
	PostID  string
	Message string
}

func (s *CommunityService) loadPost(ctx context.Context, id string) (*model.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, pkg.ErrPostNotFound
	}
	return p, nil
}

func (s *CommunityService) loadComment(ctx context.Context, id string) (*model.Comment, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, pkg.ErrCommentNotFound
	}
	return c, nil
}

// CreatePost 只有成员可以发帖
func (s *CommunityService) CreatePost(ctx context.Context, actor *model.User, in CreatePostInput) (p *model.Post, err error) {
	defer observe("createPost", &err)
	c, err := s.loadCommunity(ctx, in.CommunityID)
	if err != nil {
		return nil, err
	}
	if err = s.rules.CanPost(actor, c); err != nil {
		return nil, err
	}
	title, err := cleanText(in.Title, model.PostTitleMax)
	if err != nil {
		return nil, err
	}
	p = &model.Post{
		ID:          newID(),
		OwnerID:     actor.ID,
		CommunityID: c.ID,
		Title:       title,
		Body:        pkg.Sanitize(in.Body),
		Picture:     in.Picture,
	}
	if err = s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CommunityService) DeletePost(ctx context.Context, actor *model.User, postID string) (err error) {
	defer observe("deletePost", &err)
	p, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if err = s.rules.CanDeletePost(actor, p); err != nil {
		return err
	}
	return s.posts.Delete(ctx, p.ID, actor.ID)
}

// CreateComment 帖子存在即可评论，不要求是社区成员
func (s *CommunityService) CreateComment(ctx context.Context, actor *model.User, in CreateCommentInput) (c *model.Comment, err error) {
	defer observe("createComment", &err)
	p, err := s.loadPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	msg, err := cleanText(in.Message, 0)
	if err != nil {
		return nil, err
	}
	c = &model.Comment{
		ID:      newID(),
		OwnerID: actor.ID,
		Message: msg,
	}
	if err = s.comments.Create(ctx, p.ID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommunityService) DeleteComment(ctx context.Context, actor *model.User, commentID string) (err error) {
	defer observe("deleteComment", &err)
	c, err := s.loadComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err = s.rules.CanDeleteComment(actor, c); err != nil {
		return err
	}
	return s.comments.Delete(ctx, c.ID, actor.ID)
}

func (s *CommunityService) GetPostComments(ctx context.Context, postID string) (out []view.Comment, err error) {
	defer observe("getPostComments", &err)
	p, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.projector.Comments(ctx, p.Comments)
}
