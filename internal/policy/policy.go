// Package policy 社区操作的权限规则，纯函数，不访问存储。
// 每条规则放行返回 nil，拒绝返回具体的业务错误。
package policy

import (
	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"
)

type Rules struct {
	// AdminOverride 允许管理员删除他人的社区、帖子和评论
	AdminOverride bool
}

func (r Rules) CanPost(user *model.User, c *model.Community) error {
	if !c.HasMember(user.ID) {
		return pkg.ErrNotMember
	}
	return nil
}

func (r Rules) CanDeleteCommunity(user *model.User, c *model.Community) error {
	return r.ownerOrAdmin(user, c.OwnerID)
}

func (r Rules) CanDeletePost(user *model.User, p *model.Post) error {
	return r.ownerOrAdmin(user, p.OwnerID)
}

func (r Rules) CanDeleteComment(user *model.User, c *model.Comment) error {
	return r.ownerOrAdmin(user, c.OwnerID)
}

func (r Rules) CanJoin(user *model.User, c *model.Community) error {
	if c.HasMember(user.ID) {
		return pkg.ErrAlreadyMember
	}
	return nil
}

// CanLeave 先判断成员身份，再判断是否群主
func (r Rules) CanLeave(user *model.User, c *model.Community) error {
	if !c.HasMember(user.ID) {
		return pkg.ErrNotMember
	}
	if c.OwnerID == user.ID {
		return pkg.ErrIsOwner
	}
	return nil
}

func (r Rules) CanLikePost(user *model.User, p *model.Post) error {
	if p.LikedBy(user.ID) {
		return pkg.ErrAlreadyLiked
	}
	return nil
}

func (r Rules) CanLikeComment(user *model.User, c *model.Comment) error {
	if c.LikedBy(user.ID) {
		return pkg.ErrAlreadyLiked
	}
	return nil
}

func (r Rules) ownerOrAdmin(user *model.User, ownerID string) error {
	if user.ID == ownerID {
		return nil
	}
	if r.AdminOverride && user.IsAdmin() {
		return nil
	}
	return pkg.ErrNotOwner
}
