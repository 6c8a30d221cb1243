package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/movieapi/internal/handler"
	"github.com/user/movieapi/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ==================== 认证 ====================
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/register-admin", h.RegisterAdmin)
		auth.POST("/login", h.Login)
		auth.GET("/validate", middleware.RequireAuth(h.Config.AppSecret), h.Validate)
	}

	// ==================== 电影目录（公开）====================
	movies := api.Group("/movies")
	{
		movies.GET("", h.ListMovies)
		movies.GET("/search", h.SearchMovies)
		movies.GET("/trending", h.TrendingMovies)
		movies.GET("/recommendations", h.Recommendations)
		movies.GET("/genre/:genre", h.MoviesByGenre)
		movies.GET("/:id", h.GetMovie)
	}

	// ==================== 视频流（游客可播放）====================
	stream := api.Group("/stream")
	stream.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		stream.GET("/:id", h.StreamVideo)
		stream.GET("/views/:id", h.MovieViews)
		stream.POST("/progress", h.UpdateProgress)
		stream.POST("/complete/:id", h.MarkCompleted)
		stream.POST("/end/:sessionId", h.EndSession)
	}

	// ==================== 评论 ====================
	comments := api.Group("/comments")
	comments.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		comments.GET("/movie/:movieId", h.ListComments)
	}
	commentsAuth := api.Group("/comments")
	commentsAuth.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		commentsAuth.POST("/movie/:movieId", h.CreateComment)
		commentsAuth.PUT("/:commentId", h.UpdateComment)
		commentsAuth.DELETE("/:commentId", h.DeleteComment)
	}

	// ==================== 用户中心（需要登录）====================
	users := api.Group("/users")
	users.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		users.GET("/me", h.Me)
		users.GET("/history", h.WatchHistoryList)
		users.GET("/sessions", h.UserSessions)

		users.GET("/favorites", h.ListFavorites)
		users.GET("/favorites/:movieId", h.CheckFavorite)
		users.POST("/favorites/:movieId", h.AddFavorite)
		users.DELETE("/favorites/:movieId", h.RemoveFavorite)

		users.GET("/watchlist", h.ListWatchlist)
		users.POST("/watchlist/:movieId", h.AddToWatchlist)
		users.DELETE("/watchlist/:movieId", h.RemoveFromWatchlist)

		users.GET("/watchlater", h.ListWatchLater)
		users.POST("/watchlater/:movieId", h.AddToWatchLater)
		users.DELETE("/watchlater/:movieId", h.RemoveFromWatchLater)
	}

	// ==================== 管理后台 ====================
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/users", h.AdminUsers)
		admin.DELETE("/users/:id", h.AdminDeleteUser)
		admin.GET("/streams/active", h.ActiveStreams)

		admin.POST("/movies", h.CreateMovie)
		admin.PUT("/movies/:id", h.UpdateMovie)
		admin.DELETE("/movies/:id", h.DeleteMovie)
		admin.POST("/movies/:id/feature", h.FeatureMovie)

		admin.POST("/upload/video", h.UploadVideo)
		admin.POST("/upload/image", h.UploadImage)
	}
}
