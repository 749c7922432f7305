package model

import "time"

type PostLike struct {
	PostID    string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"primaryKey;size:64;index"`
	CreatedAt time.Time
}

func (PostLike) TableName() string {
	return "post_likes"
}

type CommentLike struct {
	CommentID string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"primaryKey;size:64;index"`
	CreatedAt time.Time
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

// PostComment 帖子与评论的归属关系，评论只属于一个帖子
type PostComment struct {
	PostID    string `gorm:"primaryKey;size:36"`
	CommentID string `gorm:"primaryKey;size:36;uniqueIndex"`
	CreatedAt time.Time
}

func (PostComment) TableName() string {
	return "post_comments"
}
