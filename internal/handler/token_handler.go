package handler

import (
	"Buddy_Community/internal/middleware"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	identity *service.IdentityResolver
}

func NewTokenHandler(identity *service.IdentityResolver) *TokenHandler {
	return &TokenHandler{identity: identity}
}

// Revoke 吊销当前请求携带的令牌
func (h *TokenHandler) Revoke(c *gin.Context) {
	if err := h.identity.Revoke(c.Request.Context(), middleware.Token(c)); err != nil {
		middleware.Fail(c, err)
		return
	}
	pkg.SuccessMessage(c, "Token revoked successfully")
}
