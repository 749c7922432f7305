package service

import (
	"context"
	"time"

	"Buddy_Community/internal/model"
)

// 存储约定：FindByID / FindByEmail 不存在时返回 nil, nil

type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type AvatarStore interface {
	FindImage(ctx context.Context, id string) (string, error)
}

type CommunityStore interface {
	FindByID(ctx context.Context, id string) (*model.Community, error)
	FindAll(ctx context.Context) ([]model.Community, error)
	FindJoined(ctx context.Context, userID string) ([]model.Community, error)
	Create(ctx context.Context, c *model.Community) error
	Delete(ctx context.Context, id, actorID string) error
	AddMember(ctx context.Context, communityID, userID string) (bool, error)
	RemoveMember(ctx context.Context, communityID, userID string) (bool, error)
}

type PostStore interface {
	FindByID(ctx context.Context, id string) (*model.Post, error)
	Create(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id, actorID string) error
}

type CommentStore interface {
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	Create(ctx context.Context, postID string, c *model.Comment) error
	Delete(ctx context.Context, id, actorID string) error
}

// LikeStore 点赞并在同一事务内重算 like_count；重复点赞 changed=false
type LikeStore interface {
	LikePost(ctx context.Context, postID, userID string) (bool, error)
	LikeComment(ctx context.Context, commentID, userID string) (bool, error)
}

type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type Stores struct {
	Users       UserStore
	Avatars     AvatarStore
	Communities CommunityStore
	Posts       PostStore
	Comments    CommentStore
	Likes       LikeStore
}
