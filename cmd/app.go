package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"appsuite-be/internal/cache"
	"appsuite-be/internal/database"
	"appsuite-be/internal/idgen"
	"appsuite-be/internal/jwt"
	"appsuite-be/internal/logger"
	"appsuite-be/internal/repository"
	"appsuite-be/internal/service"
)

// app holds the wired services shared by the subcommands.
type app struct {
	logger   *zap.Logger
	db       *sql.DB // nil when running on the in-memory store
	cache    cache.Cache
	urlRepo  repository.URLRepository
	userRepo repository.UserRepository
	urls     service.URLService
	auth     service.AuthService
}

func newApp(ctx context.Context) (*app, error) {
	log, err := logger.New(logger.Options{
		Level:   Cfg.LogLevel,
		File:    Cfg.LogFile,
		AppName: "appsuite-be",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{logger: log}

	if Cfg.DatabaseURL != "" {
		db, err := database.NewConnection(ctx, Cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		a.urlRepo = repository.NewURLRepository(db)
		a.userRepo = repository.NewUserRepository(db)
		log.Info("using Postgres store")
	} else {
		store := repository.NewMemoryStore()
		a.urlRepo = store.URLs()
		a.userRepo = store.Users()
		log.Warn("DATABASE_URL not set, using in-memory store; data is lost on restart")
	}

	a.cache = cache.NewMemoryCache()
	if Cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, Cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, continuing with in-memory cache", zap.Error(err))
		} else {
			a.cache = redisCache
			log.Info("connected to Redis cache")
		}
	}

	var opts []service.URLServiceOption
	if Cfg.CheckURLReachable {
		opts = append(opts, service.WithURLChecker(service.NewHTTPChecker(5*time.Second)))
	}
	a.urls = service.NewURLService(a.urlRepo, a.cache, idgen.NewRandomGenerator(Cfg.ShortCodeLength), log, opts...)

	jwtService := jwt.NewJWTService(Cfg.JWTSecret, time.Duration(Cfg.JWTTTL)*time.Hour)
	a.auth = service.NewAuthService(a.userRepo, jwtService, a.cache, log)

	return a, nil
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close cache", zap.Error(err))
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
