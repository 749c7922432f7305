package model

import "time"

const (
	OutboxPending = 0
	OutboxSent    = 1
	OutboxFailed  = 2
)

const (
	EventCommunityCreated = "community.created"
	EventCommunityDeleted = "community.deleted"
	EventCommunityJoined  = "community.joined"
	EventCommunityLeft    = "community.left"
	EventPostCreated      = "post.created"
	EventPostDeleted      = "post.deleted"
	EventPostLiked        = "post.liked"
	EventCommentCreated   = "comment.created"
	EventCommentDeleted   = "comment.deleted"
	EventCommentLiked     = "comment.liked"
)

// CommunityOutbox 社区领域事件表，和业务写入同事务
type CommunityOutbox struct {
	ID          uint64 `gorm:"primaryKey"`
	EventType   string `gorm:"size:32;not null"`
	AggregateID string `gorm:"size:36;not null;index"`
	ActorID     string `gorm:"size:64"`
	Payload     string `gorm:"type:text;not null"`
	Status      int8   `gorm:"not null;default:0;index"` // 0=pending,1=sent,2=failed
	Retry       int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CommunityOutbox) TableName() string { return "community_outbox" }
