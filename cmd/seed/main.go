package main

import (
	"context"
	"log"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/internal/repository"
	"github.com/noah-isme/avaliacao-fisica-api/internal/service"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/cache"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/config"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/database"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/logger"
)

var campuses = []struct{ name, city string }{
	{name: "Chapecó", city: "Chapecó"},
	{name: "São Miguel do Oeste", city: "São Miguel do Oeste"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Seed.AdminPassword == "" {
		logr.Fatal("SEED_ADMIN_PASSWORD must be set")
	}

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Fatal("failed to apply migrations", zap.Error(err))
	}

	campusRepo := repository.NewCampusRepository(db)
	var firstCampus *models.Campus
	for _, c := range campuses {
		campus, err := campusRepo.Upsert(ctx, c.name, c.city)
		if err != nil {
			logr.Fatal("failed to seed campus", zap.String("name", c.name), zap.Error(err))
		}
		if firstCampus == nil {
			firstCampus = campus
		}
		logr.Info("campus ready", zap.Int64("id", campus.ID), zap.String("name", campus.Name))
	}

	cost := cfg.Security.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), cost)
	if err != nil {
		logr.Fatal("failed to hash admin password", zap.Error(err))
	}

	admin := &models.Account{
		Email:        strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail)),
		PasswordHash: string(hash),
		Name:         cfg.Seed.AdminName,
		Role:         models.RoleAdmin,
		Status:       models.AccountActive,
		CampusID:     firstCampus.ID,
	}
	created, err := repository.NewAccountRepository(db).EnsureByEmail(ctx, admin)
	if err != nil {
		logr.Fatal("failed to seed admin", zap.Error(err))
	}
	if created {
		logr.Info("admin created", zap.String("email", admin.Email))
	} else {
		logr.Info("admin already present", zap.String("email", admin.Email))
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, skipping cache invalidation", zap.Error(err))
		return
	}
	if redisClient == nil {
		return
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "")
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, nil, cfg.Campus.CacheTTL, logr, true)
	service.NewCampusService(campusRepo, cacheSvc, cfg.Campus.CacheTTL, logr).Invalidate(ctx)
}
