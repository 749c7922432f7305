package router

import (
	"net/http"

	"Buddy_Community/internal/handler"
	"Buddy_Community/internal/metrics"
	"Buddy_Community/internal/middleware"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps 路由依赖，由 main 组装
type Deps struct {
	Community          *service.CommunityService
	Identity           *service.IdentityResolver
	Logger             *zap.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func InitRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.Ginzap(log),
		middleware.RecoveryWithZap(log),
		cors.New(corsConfig(d.AllowedOrigins)),
		metrics.GinMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		pkg.Success(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	community := handler.NewCommunityHandler(d.Community)
	post := handler.NewPostHandler(d.Community)
	like := handler.NewPostLikeHandler(d.Community)
	token := handler.NewTokenHandler(d.Identity)

	auth := middleware.AuthMiddleware(d.Identity)
	limit := middleware.RateLimitMiddleware(d.RateLimitPerMinute)

	// token相关接口
	tokenGroup := r.Group("/api/token")
	tokenGroup.Use(limit, auth)
	{
		tokenGroup.POST("/revoke", token.Revoke)
	}

	// 社区相关接口
	communityGroup := r.Group("/api/community")
	communityGroup.Use(limit, auth)
	{
		get := communityGroup.Group("/get")
		get.GET("/communities", community.List)
		get.GET("/members/:communityId", community.Members)
		get.GET("/posts/:communityId", community.Posts)
		get.GET("/joined/posts", community.JoinedPosts)
		get.GET("/post/likes/:postId", like.PostLikes)
		get.GET("/comment/likes/:commentId", like.CommentLikes)
		get.GET("/post/comments/:postId", post.Comments)

		communityGroup.POST("/create", community.Create)
		communityGroup.DELETE("/delete", community.Delete)
		communityGroup.POST("/join", community.Join)
		communityGroup.POST("/leave", community.Leave)

		// 帖子与评论
		communityGroup.POST("/create/post", post.CreatePost)
		communityGroup.DELETE("/delete/post/:postId", post.DeletePost)
		communityGroup.POST("/create/comment", post.CreateComment)
		communityGroup.DELETE("/delete/comment/:commentId", post.DeleteComment)

		communityGroup.POST("/like/post/:postId", like.LikePost)
		communityGroup.POST("/like/comment/:commentId", like.LikeComment)
	}

	return r
}
