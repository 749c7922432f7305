package service

import (
	"context"
	"slices"
	"time"

	"Buddy_Community/internal/model"
)

// memDB 内存版存储，行为对齐 mysql 仓储：不存在返回 nil, nil，关系以 id 保存
type memDB struct {
	clock time.Time
	err   error

	users        map[string]*model.User
	avatars      map[string]string
	communities  []*model.Community
	members      map[string][]string
	posts        []*model.Post
	postLikes    map[string][]string
	comments     map[string]*model.Comment
	commentLikes map[string][]string
	postComments map[string][]string
}

func newMemDB() *memDB {
	return &memDB{
		clock:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:        map[string]*model.User{},
		avatars:      map[string]string{},
		members:      map[string][]string{},
		postLikes:    map[string][]string{},
		comments:     map[string]*model.Comment{},
		commentLikes: map[string][]string{},
		postComments: map[string][]string{},
	}
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memDB) addUser(id, name string) *model.User {
	u := &model.User{ID: id, Username: name, Email: name + "@buddy.gg", Avatar: "av-" + id}
	m.users[id] = u
	m.avatars[u.Avatar] = name + ".png"
	return u
}

func (m *memDB) stores() Stores {
	return Stores{
		Users:       memUsers{m},
		Avatars:     memUsers{m},
		Communities: memCommunities{m},
		Posts:       memPosts{m},
		Comments:    memComments{m},
		Likes:       memLikes{m},
	}
}

func (m *memDB) userList(ids []string) []model.User {
	out := []model.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out
}

func (m *memDB) comment(id string) *model.Comment {
	c, ok := m.comments[id]
	if !ok {
		return nil
	}
	cp := *c
	cp.Likes = m.userList(m.commentLikes[id])
	return &cp
}

func (m *memDB) post(p *model.Post) model.Post {
	cp := *p
	cp.Likes = m.userList(m.postLikes[p.ID])
	cp.Comments = []model.Comment{}
	for _, cid := range m.postComments[p.ID] {
		cp.Comments = append(cp.Comments, *m.comment(cid))
	}
	return cp
}

func (m *memDB) community(c *model.Community) model.Community {
	cp := *c
	cp.Members = m.userList(m.members[c.ID])
	cp.Posts = []model.Post{}
	for _, p := range m.posts {
		if p.CommunityID == c.ID {
			cp.Posts = append(cp.Posts, m.post(p))
		}
	}
	return cp
}

type memUsers struct{ *memDB }

func (m memUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users[id], nil
}

func (m memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m memUsers) FindImage(_ context.Context, id string) (string, error) {
	return m.avatars[id], nil
}

type memCommunities struct{ *memDB }

func (m memCommunities) FindByID(_ context.Context, id string) (*model.Community, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.communities {
		if c.ID == id {
			cp := m.community(c)
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memCommunities) FindAll(_ context.Context) ([]model.Community, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.Community{}
	for _, c := range m.communities {
		out = append(out, m.community(c))
	}
	return out, nil
}

func (m memCommunities) FindJoined(_ context.Context, userID string) ([]model.Community, error) {
	out := []model.Community{}
	for _, c := range m.communities {
		if slices.Contains(m.members[c.ID], userID) {
			out = append(out, m.community(c))
		}
	}
	return out, nil
}

func (m memCommunities) Create(_ context.Context, c *model.Community) error {
	if m.err != nil {
		return m.err
	}
	c.CreatedAt = m.tick()
	cp := *c
	m.communities = append(m.communities, &cp)
	m.members[c.ID] = []string{c.OwnerID}
	return nil
}

func (m memCommunities) Delete(_ context.Context, id, _ string) error {
	m.communities = slices.DeleteFunc(m.communities, func(c *model.Community) bool { return c.ID == id })
	delete(m.members, id)
	m.posts = slices.DeleteFunc(m.posts, func(p *model.Post) bool { return p.CommunityID == id })
	return nil
}

func (m memCommunities) AddMember(_ context.Context, communityID, userID string) (bool, error) {
	if slices.Contains(m.members[communityID], userID) {
		return false, nil
	}
	m.members[communityID] = append(m.members[communityID], userID)
	return true, nil
}

func (m memCommunities) RemoveMember(_ context.Context, communityID, userID string) (bool, error) {
	before := len(m.members[communityID])
	m.members[communityID] = slices.DeleteFunc(m.members[communityID], func(id string) bool { return id == userID })
	return len(m.members[communityID]) < before, nil
}

type memPosts struct{ *memDB }

func (m memPosts) FindByID(_ context.Context, id string) (*model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.posts {
		if p.ID == id {
			cp := m.post(p)
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memPosts) Create(_ context.Context, p *model.Post) error {
	p.CreatedAt = m.tick()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.posts = append(m.posts, &cp)
	return nil
}

func (m memPosts) Delete(_ context.Context, id, _ string) error {
	m.posts = slices.DeleteFunc(m.posts, func(p *model.Post) bool { return p.ID == id })
	return nil
}

type memComments struct{ *memDB }

func (m memComments) FindByID(_ context.Context, id string) (*model.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.comment(id), nil
}

func (m memComments) Create(_ context.Context, postID string, c *model.Comment) error {
	c.CreatedAt = m.tick()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.comments[c.ID] = &cp
	m.postComments[postID] = append(m.postComments[postID], c.ID)
	return nil
}

func (m memComments) Delete(_ context.Context, id, _ string) error {
	delete(m.comments, id)
	for pid, ids := range m.postComments {
		m.postComments[pid] = slices.DeleteFunc(ids, func(cid string) bool { return cid == id })
	}
	return nil
}

type memLikes struct{ *memDB }

func (m memLikes) LikePost(_ context.Context, postID, userID string) (bool, error) {
	if slices.Contains(m.postLikes[postID], userID) {
		return false, nil
	}
	m.postLikes[postID] = append(m.postLikes[postID], userID)
	for _, p := range m.posts {
		if p.ID == postID {
			p.LikeCount = len(m.postLikes[postID])
			p.UpdatedAt = m.tick()
		}
	}
	return true, nil
}

func (m memLikes) LikeComment(_ context.Context, commentID, userID string) (bool, error) {
	if slices.Contains(m.commentLikes[commentID], userID) {
		return false, nil
	}
	m.commentLikes[commentID] = append(m.commentLikes[commentID], userID)
	if c, ok := m.comments[commentID]; ok {
		c.LikeCount = len(m.commentLikes[commentID])
	}
	return true, nil
}

type memTokens struct {
	revoked map[string]time.Duration
	err     error
}

func (t *memTokens) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if t.err != nil {
		return t.err
	}
	t.revoked[token] = ttl
	return nil
}

func (t *memTokens) IsRevoked(_ context.Context, token string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	_, ok := t.revoked[token]
	return ok, nil
}
