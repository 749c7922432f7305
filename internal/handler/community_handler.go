package handler

import (
	"Buddy_Community/internal/middleware"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

type CommunityCreateReq struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"required"`
	Avatar      string `json:"avatar" binding:"max=512"`
	Wallpaper   string `json:"wallpaper" binding:"max=512"`
}

// CommunityReq 加入、退出、删除共用
type CommunityReq struct {
	CommunityID string `json:"communityId" binding:"required"`
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

func (h *CommunityHandler) List(c *gin.Context) {
	list, err := h.svc.GetCommunities(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.Success(c, gin.H{"communities": list})
}

func (h *CommunityHandler) Members(c *gin.Context) {
	community, err := h.svc.GetMembers(c.Request.Context(), c.Param("communityId"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.Success(c, community)
}

func (h *CommunityHandler) Posts(c *gin.Context) {
	posts, err := h.svc.GetCommunityPosts(c.Request.Context(), middleware.Actor(c), c.Param("communityId"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.Success(c, gin.H{"posts": posts})
}

func (h *CommunityHandler) JoinedPosts(c *gin.Context) {
	posts, err := h.svc.GetJoinedCommunitiesPosts(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.Success(c, gin.H{"posts": posts})
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, pkg.ErrInvalidRequest)
		return
	}

	_, err := h.svc.CreateCommunity(c.Request.Context(), middleware.Actor(c), service.CreateCommunityInput{
		Name:        req.Name,
		Description: req.Description,
		Avatar:      req.Avatar,
		Wallpaper:   req.Wallpaper,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Community created successfully")
}

func (h *CommunityHandler) Delete(c *gin.Context) {
	var req CommunityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, pkg.ErrInvalidRequest)
		return
	}
	if err := h.svc.DeleteCommunity(c.Request.Context(), middleware.Actor(c), req.CommunityID); err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Community deleted successfully")
}

func (h *CommunityHandler) Join(c *gin.Context) {
	var req CommunityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, pkg.ErrInvalidRequest)
		return
	}
	community, err := h.svc.JoinCommunity(c.Request.Context(), middleware.Actor(c), req.CommunityID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Joined "+community.Name+" successfully")
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	var req CommunityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, pkg.ErrInvalidRequest)
		return
	}
	community, err := h.svc.LeaveCommunity(c.Request.Context(), middleware.Actor(c), req.CommunityID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Left "+community.Name+" successfully")
}
