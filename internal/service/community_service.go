package service

import (
	"context"
	"slices"
	"unicode/utf8"

	"Buddy_Community/internal/metrics"
	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/policy"
	"Buddy_Community/internal/view"

	"github.com/google/uuid"
)

// CommunityService 社区、帖子、评论、点赞的全部操作
type CommunityService struct {
	communities CommunityStore
	posts       PostStore
	comments    CommentStore
	likes       LikeStore
	rules       policy.Rules
	projector   *view.Projector
}

func NewCommunityService(stores Stores, rules policy.Rules) *CommunityService {
	return &CommunityService{
		communities: stores.Communities,
		posts:       stores.Posts,
		comments:    stores.Comments,
		likes:       stores.Likes,
		rules:       rules,
		projector:   view.NewProjector(stores.Users, stores.Avatars),
	}
}

type CreateCommunityInput struct {
	Name        string
	Description string
	Avatar      string
	Wallpaper   string
}

func observe(op string, err *error) {
	metrics.RecordOperation(op, *err)
}

// cleanText 清洗后为空或超长都算非法输入，maxLen<=0 不限长
func cleanText(input string, maxLen int) (string, error) {
	out := pkg.Sanitize(input)
	if out == "" || (maxLen > 0 && utf8.RuneCountInString(out) > maxLen) {
		return "", pkg.ErrInvalidRequest
	}
	return out, nil
}

func newID() string {
	return uuid.NewString()
}

func (s *CommunityService) loadCommunity(ctx context.Context, id string) (*model.Community, error) {
	c, err := s.communities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, pkg.ErrCommunityNotFound
	}
	return c, nil
}

func (s *CommunityService) GetCommunities(ctx context.Context, actor *model.User) (out []view.Community, err error) {
	defer observe("getCommunities", &err)
	list, err := s.communities.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.projector.Communities(list, actor), nil
}

func (s *CommunityService) GetMembers(ctx context.Context, communityID string) (out *view.CommunityMembers, err error) {
	defer observe("getMembers", &err)
	c, err := s.loadCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	return s.projector.CommunityMembers(ctx, c)
}

// GetCommunityPosts 非成员看到空列表，不报错
func (s *CommunityService) GetCommunityPosts(ctx context.Context, actor *model.User, communityID string) (out []view.Post, err error) {
	defer observe("getCommunityPosts", &err)
	c, err := s.loadCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if !c.HasMember(actor.ID) {
		return []view.Post{}, nil
	}
	return s.projector.Posts(ctx, c.Name, c.Posts, actor)
}

// GetJoinedCommunitiesPosts 已加入社区的帖子合并，按更新时间倒序
func (s *CommunityService) GetJoinedCommunitiesPosts(ctx context.Context, actor *model.User) (out []view.Post, err error) {
	defer observe("getJoinedCommunitiesPosts", &err)
	joined, err := s.communities.FindJoined(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out = []view.Post{}
	for i := range joined {
		posts, err := s.projector.Posts(ctx, joined[i].Name, joined[i].Posts, actor)
		if err != nil {
			return nil, err
		}
		out = append(out, posts...)
	}
	slices.SortStableFunc(out, func(a, b view.Post) int {
		return b.UpdatedDate.Compare(a.UpdatedDate)
	})
	return out, nil
}

// CreateCommunity 创建者即群主，同时成为第一个成员
func (s *CommunityService) CreateCommunity(ctx context.Context, actor *model.User, in CreateCommunityInput) (c *model.Community, err error) {
	defer observe("createCommunity", &err)
	name, err := cleanText(in.Name, model.CommunityNameMax)
	if err != nil {
		return nil, err
	}
	c = &model.Community{
		ID:          newID(),
		Name:        name,
		Description: pkg.Sanitize(in.Description),
		Avatar:      in.Avatar,
		Wallpaper:   in.Wallpaper,
		OwnerID:     actor.ID,
	}
	if err = s.communities.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Members = []model.User{*actor}
	return c, nil
}

func (s *CommunityService) DeleteCommunity(ctx context.Context, actor *model.User, communityID string) (err error) {
	defer observe("deleteCommunity", &err)
	c, err := s.loadCommunity(ctx, communityID)
	if err != nil {
		return err
	}
	if err = s.rules.CanDeleteCommunity(actor, c); err != nil {
		return err
	}
	return s.communities.Delete(ctx, c.ID, actor.ID)
}

func (s *CommunityService) JoinCommunity(ctx context.Context, actor *model.User, communityID string) (c *model.Community, err error) {
	defer observe("joinCommunity", &err)
	c, err = s.loadCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if err = s.rules.CanJoin(actor, c); err != nil {
		return nil, err
	}
	changed, err := s.communities.AddMember(ctx, c.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, pkg.ErrAlreadyMember
	}
	return c, nil
}

func (s *CommunityService) LeaveCommunity(ctx context.Context, actor *model.User, communityID string) (c *model.Community, err error) {
	defer observe("leaveCommunity", &err)
	c, err = s.loadCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if err = s.rules.CanLeave(actor, c); err != nil {
		return nil, err
	}
	changed, err := s.communities.RemoveMember(ctx, c.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, pkg.ErrNotMember
	}
	return c, nil
}
