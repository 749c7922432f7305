package view

import "time"

// Community 社区列表视图：数量 + 当前用户是否已加入
type Community struct {
	ID          string    `json:"communityId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Avatar      string    `json:"communityAvatar"`
	Wallpaper   string    `json:"wallpaper"`
	CreatedDate time.Time `json:"createdDate"`
	MemberCount int       `json:"memberCount"`
	PostCount   int       `json:"postCount"`
	IsJoined    bool      `json:"isJoined"`
}

// CommunityMembers 成员视图，和 Community 是两种不同的返回结构
type CommunityMembers struct {
	ID          string    `json:"communityId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Avatar      string    `json:"communityAvatar"`
	Wallpaper   string    `json:"wallpaper"`
	CreatedDate time.Time `json:"createdDate"`
	Members     []Member  `json:"members"`
}

// Member 成员或点赞用户；IsOwner 相对列表的所有者计算
type Member struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	IsOwner  bool   `json:"isOwner"`
}

type Post struct {
	ID            string    `json:"postId"`
	Username      string    `json:"username"`
	Avatar        string    `json:"avatar"`
	CommunityName string    `json:"communityName,omitempty"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Picture       string    `json:"picture,omitempty"`
	CreatedDate   time.Time `json:"createdDate"`
	UpdatedDate   time.Time `json:"updatedDate"`
	LikeCount     int       `json:"likeCount"`
	CommentCount  int       `json:"commentCount"`
	IsLiked       *bool     `json:"isLiked,omitempty"` // 无当前用户时不返回
}

type Comment struct {
	ID          string    `json:"commentId"`
	Username    string    `json:"username"`
	Avatar      string    `json:"avatar"`
	Message     string    `json:"message"`
	LikeCount   int       `json:"likeCount"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}
