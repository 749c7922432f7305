package middleware

import (
	"context"
	"strings"

	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey  = "actor"
	ContextTokenKey = "token"
)

// Resolver 令牌解析为玩家
type Resolver interface {
	Resolve(ctx context.Context, credential string) (*model.User, error)
}

func AuthMiddleware(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			Fail(c, pkg.ErrInvalidCredential)
			c.Abort()
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			Fail(c, err)
			c.Abort()
			return
		}

		// 注入当前玩家
		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, parts[1])
		c.Next()
	}
}

// Actor 取出鉴权中间件注入的玩家
func Actor(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

func Token(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
