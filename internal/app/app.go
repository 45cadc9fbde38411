package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kavjeydev/notepod-sub000/internal/config"
	"github.com/kavjeydev/notepod-sub000/internal/domain/services"
	"github.com/kavjeydev/notepod-sub000/internal/infrastructure/cache"
	"github.com/kavjeydev/notepod-sub000/internal/infrastructure/database"
	"github.com/kavjeydev/notepod-sub000/internal/infrastructure/database/repositories"
	"github.com/kavjeydev/notepod-sub000/internal/interfaces/handlers"
	"github.com/kavjeydev/notepod-sub000/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func Run(cfg config.Config) error {
	if err := logger.InitLogger(cfg.Env); err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userRepo := repositories.NewUserRepository(db.Pool())
	sessionRepo := repositories.NewSessionRepository(db.Pool())
	docRepo := repositories.NewDocumentRepository(db.DB())
	likeRepo := repositories.NewLikeRepository(db.DB())

	cacheSvc := services.NewRedisCacheService(redisClient, cfg.Cache.Duration)
	jobStore := services.NewRedisJobStore(redisClient, cfg.Jobs.TTL)
	authSvc := services.NewAuthService(userRepo, sessionRepo, cfg.Auth.AdminToken, cfg.Auth.TokenDuration)
	docSvc := services.NewDocumentService(docRepo, cacheSvc, jobStore, cfg.Jobs.CascadeTimeout, logger.Logger)
	likeSvc := services.NewLikeService(likeRepo, docRepo, cacheSvc)

	authHandler := handlers.NewAuthHandler(authSvc)
	docHandler := handlers.NewDocumentHandler(docSvc)
	likeHandler := handlers.NewLikeHandler(likeSvc)
	jobHandler := handlers.NewJobHandler(jobStore)

	if cfg.Env != "dev" && cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.MetricsMiddleware())
	r.Use(handlers.HeadToGetMiddleware())
	r.Use(handlers.CORSMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/auth", authHandler.Authenticate)
		api.DELETE("/auth/:token", authHandler.Logout)

		public := api.Group("/", handlers.OptionalAuth(authSvc))
		{
			public.GET("/documents/community", docHandler.GetCommunity)
			public.GET("/documents/:id", docHandler.GetByID)
			public.POST("/documents/:id/view", docHandler.RecordView)
		}

		private := api.Group("/", handlers.RequireAuth(authSvc))
		{
			private.POST("/documents", docHandler.Create)
			private.GET("/documents/sidebar", docHandler.GetSidebar)
			private.GET("/documents/trash", docHandler.GetTrash)
			private.GET("/documents/search", docHandler.GetSearch)
			private.PATCH("/documents/:id", docHandler.Update)
			private.PATCH("/documents/:id/move", docHandler.Move)
			private.PATCH("/documents/:id/archive", docHandler.Archive)
			private.PATCH("/documents/:id/restore", docHandler.Restore)
			private.DELETE("/documents/:id", docHandler.Delete)
			private.DELETE("/documents/:id/icon", docHandler.RemoveIcon)

			private.POST("/documents/:id/like", likeHandler.AddLike)
			private.GET("/documents/:id/like", likeHandler.GetLike)
			private.DELETE("/likes/:id", likeHandler.RemoveLike)

			private.GET("/jobs/:id", jobHandler.GetByID)
		}
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := sessionRepo.DeleteExpired(context.Background()); err != nil {
				logger.Warn("failed to delete expired sessions", zap.Error(err))
			}
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
