package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grouple/communityhub/internal/config"
	"grouple/communityhub/internal/handler/middleware"
	"grouple/communityhub/internal/identity"
	"grouple/communityhub/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	provider identity.Provider,
	authService service.AuthService,
	authHandler *AuthHandler,
	groupHandler *GroupHandler,
	channelHandler *ChannelHandler,
	postHandler *PostHandler,
	paymentHandler *PaymentHandler,
	presenceHandler *PresenceHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes: signup/signin run before a session exists.
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/signin", authHandler.SignIn)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(middleware.SessionAuth(provider, authService))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		// Groups
		protected.POST("/groups", groupHandler.Create)
		protected.GET("/groups/search", groupHandler.Search)
		protected.GET("/groups/explore", groupHandler.Explore)
		protected.GET("/groups/:groupid", groupHandler.Info)
		protected.GET("/groups/:groupid/channels", groupHandler.Channels)
		protected.GET("/groups/:groupid/members", groupHandler.Members)
		protected.GET("/groups/:groupid/subscriptions", groupHandler.Subscriptions)
		protected.PATCH("/groups/:groupid/settings", groupHandler.UpdateSettings)
		protected.POST("/groups/:groupid/gallery", groupHandler.UpdateGallery)
		protected.POST("/groups/:groupid/invites", groupHandler.CreateInvite)
		protected.POST("/groups/:groupid/join", groupHandler.Join)
		protected.POST("/groups/:groupid/join/paid", groupHandler.PaidJoin)
		protected.POST("/groups/:groupid/channels", channelHandler.Create)
		protected.POST("/groups/:groupid/subscriptions", paymentHandler.CreateSubscription)
		protected.GET("/users/:userid/groups", groupHandler.UserGroups)

		// Channels & posts
		protected.GET("/channels/:channelid", channelHandler.Info)
		protected.PATCH("/channels/:channelid", channelHandler.Update)
		protected.DELETE("/channels/:channelid", channelHandler.Delete)
		protected.GET("/channels/:channelid/posts", postHandler.Paginated)
		protected.POST("/channels/:channelid/posts", postHandler.Create)
		protected.POST("/posts/:postid/like", postHandler.Like)
		protected.DELETE("/posts/:postid/like", postHandler.Unlike)
		protected.POST("/posts/:postid/comments", postHandler.Comment)
		protected.GET("/posts/:postid/comments", postHandler.Comments)

		// Payments
		protected.GET("/payments/intent", paymentHandler.ClientSecret)
		protected.POST("/payments/transfer", paymentHandler.Transfer)
		protected.GET("/affiliates/:affiliateid", paymentHandler.AffiliateInfo)
		protected.POST("/subscriptions/:subscriptionid/activate", paymentHandler.ActivateSubscription)

		// Shared presence channel
		protected.GET("/realtime", presenceHandler.Connect)
	}

	return r
}
