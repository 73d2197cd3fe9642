package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	redisadapter "yatube/internal/adapters/redis"
	"yatube/internal/adapters/web"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	timelineapp "yatube/internal/core/timeline/service"
	userapp "yatube/internal/core/user/service"
)

func main() {
	envLoaded := config.LoadEnv()
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	config.InitLogger(settings.Env)
	defer config.Logger.Sync() //nolint:errcheck
	if !envLoaded {
		config.Logger.Info("No .env file, using process environment")
	}
	if settings.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.InitDB(settings.DBDSN); err != nil {
		config.Logger.Fatal("Database unavailable", zap.Error(err))
	}
	if err := config.Migrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.InitRedis(ctx, settings); err != nil {
		config.Logger.Fatal("Redis unavailable", zap.Error(err))
	}
	defer closeResources(config.Logger)

	logger := config.Logger
	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(config.DB)
	followingCache := redisadapter.NewFollowingCacheRedis(config.RedisClient, settings.FeedCacheTTL, logger)

	userSvc := userapp.NewUserService(userRepo, []byte(settings.JWTSecret), logger)
	postSvc := postapp.NewPostService(postRepo, groupRepo, userRepo, logger)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, logger)
	groupSvc := groupapp.NewGroupService(groupRepo, logger)
	followerSvc := followerapp.NewFollowerService(followerRepo, userRepo, followingCache, logger)
	timelineSvc := timelineapp.NewTimelineService(postRepo, followerRepo, followingCache, logger)

	r := httpapi.NewEngine(logger)
	httpapi.Register(r, httpapi.UseCases{
		Users:     userSvc,
		Posts:     postSvc,
		Comments:  commentSvc,
		Groups:    groupSvc,
		Followers: followerSvc,
		Timeline:  timelineSvc,
	}, logger)

	pages, err := web.NewHandler(userSvc, postSvc, commentSvc, groupSvc, followerSvc, timelineSvc, logger)
	if err != nil {
		logger.Fatal("Could not load templates", zap.Error(err))
	}
	pages.SecureCookie = settings.Env == "production"
	pages.Register(r)

	srv := &http.Server{
		Addr:              ":" + settings.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("App is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
