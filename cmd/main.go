package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"grouple/communityhub/internal/config"
	"grouple/communityhub/internal/handler"
	"grouple/communityhub/internal/identity"
	"grouple/communityhub/internal/model"
	"grouple/communityhub/internal/payments"
	"grouple/communityhub/internal/presence"
	"grouple/communityhub/internal/repository"
	"grouple/communityhub/internal/service"
	jwtpkg "grouple/communityhub/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize state store (Redis or in-memory) and presence fan-out
	var stateStore repository.StateStore
	var broadcaster presence.Broadcaster
	var redisListen func(context.Context, *presence.Hub)

	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		stateStore = repository.NewRedisStateStore(redisClient)
		logger.Info("using Redis state store")

		if cfg.Presence.Broadcast == "redis" {
			rb, err := presence.NewRedisBroadcaster(redisClient, cfg.Presence.ChannelName, logger)
			if err != nil {
				logger.Fatal("failed to init presence broadcaster", zap.Error(err))
			}
			broadcaster = rb
			redisListen = rb.Listen
			logger.Info("presence fan-out over Redis", zap.String("channel", cfg.Presence.ChannelName))
		}
	case "memory":
		stateStore = repository.NewMemoryStateStore()
		logger.Info("using in-memory state store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	userRepo := repository.NewPGUserRepository(db)
	groupRepo := repository.NewPGGroupRepository(db)
	memberRepo := repository.NewPGMemberRepository(db)
	channelRepo := repository.NewPGChannelRepository(db)
	postRepo := repository.NewPGPostRepository(db)
	subRepo := repository.NewPGSubscriptionRepository(db)
	affiliateRepo := repository.NewPGAffiliateRepository(db)
	inviteRepo := repository.NewPGInviteCodeRepository(db)

	// 7. Initialize identity provider (hosted OIDC or local JWT)
	var provider identity.Provider
	switch cfg.Identity.Backend {
	case "oidc":
		provider, err = identity.NewOIDCProvider(
			context.Background(),
			cfg.Identity.Issuer, cfg.Identity.ClientID, cfg.Identity.ClientSecret,
		)
		if err != nil {
			logger.Fatal("failed to init identity provider", zap.Error(err))
		}
		logger.Info("identity via OIDC introspection", zap.String("issuer", cfg.Identity.Issuer))
	case "jwt":
		manager := jwtpkg.NewManager(
			cfg.Identity.SigningKey, cfg.Identity.Issuer,
			cfg.Identity.SessionTokenTTL, cfg.Identity.RefreshTokenTTL,
		)
		provider = identity.NewJWTProvider(manager)
		logger.Info("identity via local JWT validation")
	default:
		logger.Fatal("unknown identity backend", zap.String("backend", cfg.Identity.Backend))
	}

	// 8. Initialize services
	authService := service.NewAuthService(userRepo, stateStore)
	groupService := service.NewGroupService(groupRepo, channelRepo, memberRepo, subRepo, inviteRepo)
	channelService := service.NewChannelService(channelRepo, postRepo)
	postService := service.NewPostService(postRepo)
	paymentService := service.NewPaymentService(
		payments.NewStripeProcessor(cfg.Stripe.SecretKey),
		affiliateRepo, subRepo, groupRepo,
	)

	// 9. Presence hub
	hub := presence.NewHub(cfg.Presence.SyncInterval, broadcaster, logger)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)
	if redisListen != nil {
		go redisListen(hubCtx, hub)
	}

	// 10. Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	groupHandler := handler.NewGroupHandler(groupService)
	channelHandler := handler.NewChannelHandler(channelService)
	postHandler := handler.NewPostHandler(postService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	presenceHandler := handler.NewPresenceHandler(hub, logger)

	// 11. Setup router
	router := handler.SetupRouter(
		cfg, logger, provider, authService,
		authHandler, groupHandler, channelHandler, postHandler, paymentHandler, presenceHandler,
	)

	// 12. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 13. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
