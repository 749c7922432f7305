package model

import "time"

// 文本列长度，按字符计
const (
	CommunityNameMax = 64
	PostTitleMax     = 200
)

type Community struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:64;not null"`
	Description string `gorm:"type:text"`
	Avatar      string `gorm:"size:512"`
	Wallpaper   string `gorm:"size:512"`
	OwnerID     string `gorm:"size:64;not null;index"`
	CreatedAt   time.Time

	Members []User `gorm:"many2many:community_members"`
	Posts   []Post `gorm:"foreignKey:CommunityID"`
}

func (c *Community) HasMember(userID string) bool {
	return containsUser(c.Members, userID)
}

// CommunityMember 社区成员关系（主键即唯一约束）
type CommunityMember struct {
	CommunityID string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"primaryKey;size:64;index"`
	CreatedAt   time.Time
}

func (CommunityMember) TableName() string {
	return "community_members"
}
