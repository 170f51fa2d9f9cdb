package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appedme/konvo-backend/internal/config"
	"github.com/appedme/konvo-backend/internal/http/handlers"
	"github.com/appedme/konvo-backend/internal/http/middleware"
	"github.com/appedme/konvo-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	spaceHandler *handlers.SpaceHandler,
	postHandler *handlers.PostHandler,
	voteHandler *handlers.VoteHandler,
	commentHandler *handlers.CommentHandler,
	reportHandler *handlers.ReportHandler,
	verificationHandler *handlers.VerificationHandler,
	moderationHandler *handlers.ModerationHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/sessions", authHandler.ListSessions)
		protectedAuth.DELETE("/sessions/:id", authHandler.DeleteSession)
	}

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/users/:username", profileHandler.GetByUsername)
	api.GET("/spaces", spaceHandler.List)
	api.GET("/spaces/:slug", spaceHandler.GetBySlug)
	api.GET("/posts", postHandler.List)
	api.GET("/posts/search", postHandler.Search)
	api.GET("/posts/:id", middleware.UUIDValidator("id"), postHandler.Get)
	api.GET("/posts/:id/comments", middleware.UUIDValidator("id"), commentHandler.List)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.Me)
		protected.PUT("/profile", profileHandler.Update)

		protected.POST("/spaces", spaceHandler.Create)
		protected.POST("/spaces/:slug/join", spaceHandler.Join)
		protected.POST("/spaces/:slug/leave", spaceHandler.Leave)

		protected.POST("/posts", postHandler.Create)
		protected.DELETE("/posts/:id", middleware.UUIDValidator("id"), postHandler.Delete)
		protected.POST("/posts/:id/vote", middleware.UUIDValidator("id"), voteHandler.Cast)
		protected.GET("/posts/:id/vote", middleware.UUIDValidator("id"), voteHandler.Get)
		protected.POST("/posts/:id/comments", middleware.UUIDValidator("id"), commentHandler.Create)
		protected.DELETE("/comments/:id", middleware.UUIDValidator("id"), commentHandler.Delete)

		protected.POST("/reports", reportHandler.Create)
		protected.GET("/reports", reportHandler.ListMine)
		protected.GET("/reports/:id", middleware.UUIDValidator("id"), reportHandler.Get)

		protected.POST("/verification-requests", verificationHandler.Create)
		protected.GET("/verification-requests", verificationHandler.ListMine)
		protected.GET("/verification-requests/:id", middleware.UUIDValidator("id"), verificationHandler.Get)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread/count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.DELETE("/notifications/:id", middleware.UUIDValidator("id"), notificationHandler.Delete)

		protected.POST("/media", mediaHandler.Upload)
		protected.DELETE("/media/:id", middleware.UUIDValidator("id"), mediaHandler.Delete)
	}

	// Маршруты модерации: доступ от роли moderator и выше
	moderation := api.Group("/moderation")
	moderation.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireModerator())
	{
		moderation.GET("/reports", reportHandler.ListPending)
		moderation.POST("/reports/:id/decision", middleware.UUIDValidator("id"), moderationHandler.DecideReport)
		moderation.GET("/verification-requests", verificationHandler.ListPending)
		moderation.POST("/verification-requests/:id/decision", middleware.UUIDValidator("id"), moderationHandler.DecideVerification)
		moderation.GET("/actions", moderationHandler.ListActions)
	}

	// Админка
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireModerator())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/stats", adminHandler.Stats)
		admin.POST("/users/:id/ban", middleware.UUIDValidator("id"), moderationHandler.BanUser)
		admin.POST("/users/:id/unban", middleware.UUIDValidator("id"), adminHandler.Unban)
		admin.POST("/users/:id/role", middleware.UUIDValidator("id"), middleware.RequireAdmin(), adminHandler.SetRole)
	}

	return r
}
