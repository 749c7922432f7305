package handler

import (
	"Buddy_Community/internal/middleware"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.CommunityService
}

type PostCreateReq struct {
	CommunityID string `json:"communityId" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Body        string `json:"body"`
	Picture     string `json:"picture" binding:"max=512"`
}

type CommentCreateReq struct {
	PostID  string `json:"postId" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func NewPostHandler(svc *service.CommunityService) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, pkg.ErrInvalidRequest)
		return
	}
	_, err := h.svc.CreatePost(c.Request.Context(), middleware.Actor(c), service.CreatePostInput{
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Body:        req.Body,
		Picture:     req.Picture,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Post created successfully")
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.svc.DeletePost(c.Request.Context(), middleware.Actor(c), c.Param("postId")); err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Post deleted successfully")
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	var req CommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, pkg.ErrInvalidRequest)
		return
	}
	_, err := h.svc.CreateComment(c.Request.Context(), middleware.Actor(c), service.CreateCommentInput{
		PostID:  req.PostID,
		Message: req.Message,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Comment created successfully")
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	if err := h.svc.DeleteComment(c.Request.Context(), middleware.Actor(c), c.Param("commentId")); err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Comment deleted successfully")
}

func (h *PostHandler) Comments(c *gin.Context) {
	comments, err := h.svc.GetPostComments(c.Request.Context(), c.Param("postId"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.Success(c, gin.H{"comments": comments})
}
