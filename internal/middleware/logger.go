package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"Buddy_Community/internal/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextLoggerKey = "logger"

// Ginzap 访问日志
func Ginzap(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(contextLoggerKey, l)
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if u := Actor(c); u != nil {
			fields = append(fields, zap.String("actor", u.ID))
		}
		if len(c.Errors) > 0 {
			l.Error(c.Errors.String(), fields...)
			return
		}
		l.Info("request", fields...)
	}
}

// RecoveryWithZap panic 记录堆栈后返回 500
func RecoveryWithZap(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.Error("panic recovered",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.Response{
					Status: pkg.Status{Code: pkg.CodeInternal, Message: "internal error"},
				})
			}
		}()
		c.Next()
	}
}

// Fail 基础设施错误先记日志，再按统一结构返回
func Fail(c *gin.Context, err error) {
	if _, ok := pkg.AsBizError(err); !ok {
		_ = c.Error(err)
		if l, ok := c.Get(contextLoggerKey); ok {
			l.(*zap.Logger).Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
	}
	pkg.Fail(c, err)
}
