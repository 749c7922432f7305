package model

import "time"

type Post struct {
	ID          string    `gorm:"primaryKey;size:36"`
	OwnerID     string    `gorm:"size:64;not null;index"` // 只存 id，不做关联
	CommunityID string    `gorm:"size:36;not null;index:idx_community_time,priority:1"`
	Title       string    `gorm:"size:200;not null"`
	Body        string    `gorm:"type:text"`
	Picture     string    `gorm:"size:512"`
	LikeCount   int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"index:idx_community_time,priority:2,sort:desc"`
	UpdatedAt   time.Time

	Likes    []User    `gorm:"many2many:post_likes"`
	Comments []Comment `gorm:"many2many:post_comments"`
}

func (p *Post) LikedBy(userID string) bool {
	return containsUser(p.Likes, userID)
}

type Comment struct {
	ID        string `gorm:"primaryKey;size:36"`
	OwnerID   string `gorm:"size:64;not null;index"`
	Message   string `gorm:"type:text;not null"`
	LikeCount int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Likes []User `gorm:"many2many:comment_likes"`
}

func (c *Comment) LikedBy(userID string) bool {
	return containsUser(c.Likes, userID)
}
