package handler

import (
	"Buddy_Community/internal/middleware"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type PostLikeHandler struct {
	svc *service.CommunityService
}

func NewPostLikeHandler(svc *service.CommunityService) *PostLikeHandler {
	return &PostLikeHandler{svc: svc}
}

func (h *PostLikeHandler) LikePost(c *gin.Context) {
	if err := h.svc.LikePost(c.Request.Context(), middleware.Actor(c), c.Param("postId")); err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Liked post successfully")
}

func (h *PostLikeHandler) LikeComment(c *gin.Context) {
	if err := h.svc.LikeComment(c.Request.Context(), middleware.Actor(c), c.Param("commentId")); err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Liked comment successfully")
}

// PostLikes 点赞用户列表，帖子作者标记 isOwner
func (h *PostLikeHandler) PostLikes(c *gin.Context) {
	members, err := h.svc.GetPostLikes(c.Request.Context(), c.Param("postId"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.Success(c, gin.H{"members": members})
}

func (h *PostLikeHandler) CommentLikes(c *gin.Context) {
	members, err := h.svc.GetCommentLikes(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.Success(c, gin.H{"members": members})
}
