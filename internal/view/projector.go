package view

import (
	"context"

	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"
)

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type AvatarFinder interface {
	FindImage(ctx context.Context, id string) (string, error)
}

// Projector 把实体转换成响应视图，只读
type Projector struct {
	users   UserFinder
	avatars AvatarFinder
}

func NewProjector(users UserFinder, avatars AvatarFinder) *Projector {
	return &Projector{users: users, avatars: avatars}
}

// Communities 计数视图，viewer 为空时 IsJoined 恒为 false
func (p *Projector) Communities(list []model.Community, viewer *model.User) []Community {
	out := make([]Community, 0, len(list))
	for i := range list {
		c := &list[i]
		out = append(out, Community{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Avatar:      c.Avatar,
			Wallpaper:   c.Wallpaper,
			CreatedDate: c.CreatedAt,
			MemberCount: len(c.Members),
			PostCount:   len(c.Posts),
			IsJoined:    viewer != nil && c.HasMember(viewer.ID),
		})
	}
	return out
}

func (p *Projector) CommunityMembers(ctx context.Context, c *model.Community) (*CommunityMembers, error) {
	members, err := p.Members(ctx, c.Members, c.OwnerID)
	if err != nil {
		return nil, err
	}
	return &CommunityMembers{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Avatar:      c.Avatar,
		Wallpaper:   c.Wallpaper,
		CreatedDate: c.CreatedAt,
		Members:     members,
	}, nil
}

// Members 成员列表和点赞列表共用，ownerID 是该列表的所有者
func (p *Projector) Members(ctx context.Context, users []model.User, ownerID string) ([]Member, error) {
	s := p.session(ctx)
	out := make([]Member, 0, len(users))
	for i := range users {
		u := &users[i]
		img, err := s.avatar(u.Avatar)
		if err != nil {
			return nil, err
		}
		out = append(out, Member{
			UserID:   u.ID,
			Username: u.Username,
			Avatar:   img,
			IsOwner:  u.ID == ownerID,
		})
	}
	return out, nil
}

// Posts 任一帖子作者无法解析时整体失败
func (p *Projector) Posts(ctx context.Context, communityName string, posts []model.Post, viewer *model.User) ([]Post, error) {
	s := p.session(ctx)
	out := make([]Post, 0, len(posts))
	for i := range posts {
		post := &posts[i]
		o, err := s.owner(post.OwnerID)
		if err != nil {
			return nil, err
		}
		v := Post{
			ID:            post.ID,
			Username:      o.username,
			Avatar:        o.avatar,
			CommunityName: communityName,
			Title:         post.Title,
			Body:          post.Body,
			Picture:       post.Picture,
			CreatedDate:   post.CreatedAt,
			UpdatedDate:   post.UpdatedAt,
			LikeCount:     post.LikeCount,
			CommentCount:  len(post.Comments),
		}
		if viewer != nil {
			liked := post.LikedBy(viewer.ID)
			v.IsLiked = &liked
		}
		out = append(out, v)
	}
	return out, nil
}

func (p *Projector) Comments(ctx context.Context, comments []model.Comment) ([]Comment, error) {
	s := p.session(ctx)
	out := make([]Comment, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		o, err := s.owner(c.OwnerID)
		if err != nil {
			return nil, err
		}
		out = append(out, Comment{
			ID:          c.ID,
			Username:    o.username,
			Avatar:      o.avatar,
			Message:     c.Message,
			LikeCount:   c.LikeCount,
			CreatedDate: c.CreatedAt,
			UpdatedDate: c.UpdatedAt,
		})
	}
	return out, nil
}

type owner struct {
	username string
	avatar   string
}

// session 单次投影内缓存作者和头像，避免重复查询
type session struct {
	ctx     context.Context
	p       *Projector
	owners  map[string]owner
	avatars map[string]string
}

func (p *Projector) session(ctx context.Context) *session {
	return &session{ctx: ctx, p: p, owners: map[string]owner{}, avatars: map[string]string{}}
}

func (s *session) owner(id string) (owner, error) {
	if o, ok := s.owners[id]; ok {
		return o, nil
	}
	u, err := s.p.users.FindByID(s.ctx, id)
	if err != nil {
		return owner{}, err
	}
	if u == nil {
		return owner{}, pkg.ErrOwnerNotFound
	}
	img, err := s.avatar(u.Avatar)
	if err != nil {
		return owner{}, err
	}
	o := owner{username: u.Username, avatar: img}
	s.owners[id] = o
	return o, nil
}

func (s *session) avatar(id string) (string, error) {
	if img, ok := s.avatars[id]; ok {
		return img, nil
	}
	img, err := s.p.avatars.FindImage(s.ctx, id)
	if err != nil {
		return "", err
	}
	s.avatars[id] = img
	return img, nil
}
