package model

import "time"

const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User 玩家账号，由认证服务写入，这里只读
type User struct {
	ID        string `gorm:"primaryKey;size:64"`
	Username  string `gorm:"uniqueIndex;size:64;not null"`
	Email     string `gorm:"uniqueIndex;size:128;not null"`
	Avatar    string `gorm:"size:36"` // avatars.id
	Role      int    `gorm:"not null;default:0"`
	IsBlocked bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "gamers"
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Avatar 头像资源
type Avatar struct {
	ID    string `gorm:"primaryKey;size:36"`
	Image string `gorm:"type:text"`
}

func containsUser(users []User, userID string) bool {
	for i := range users {
		if users[i].ID == userID {
			return true
		}
	}
	return false
}
