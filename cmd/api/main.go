package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/avaliacao-fisica-api/api/swagger"
	"github.com/noah-isme/avaliacao-fisica-api/internal/auth"
	"github.com/noah-isme/avaliacao-fisica-api/internal/handler"
	internalmiddleware "github.com/noah-isme/avaliacao-fisica-api/internal/middleware"
	"github.com/noah-isme/avaliacao-fisica-api/internal/repository"
	"github.com/noah-isme/avaliacao-fisica-api/internal/service"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/cache"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/config"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/database"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/avaliacao-fisica-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/avaliacao-fisica-api/pkg/middleware/requestid"
)

// @title Avaliação Física API
// @version 1.0.0
// @description Student registry and physical assessments for university campuses
// @BasePath /api
// @schemes http https

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
		logr.Info("migrations applied")
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "")
	defer cacheRepo.Close() //nolint:errcheck

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	validate := validator.New()
	codec := auth.NewCodec(cfg.JWT.Secret, cfg.JWT.Expiration)
	cookie := auth.NewCookie(cfg.Session.CookieName, cfg.JWT.Expiration, cfg.CookieSecure())

	accountRepo := repository.NewAccountRepository(db)
	campusRepo := repository.NewCampusRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Campus.CacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(accountRepo, codec, validate, logr, metricsSvc, cfg.Security.BcryptCost)
	campusSvc := service.NewCampusService(campusRepo, cacheSvc, cfg.Campus.CacheTTL, logr)
	professorSvc := service.NewProfessorService(accountRepo, validate, logr, cfg.Security.BcryptCost)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, studentRepo, validate, logr, metricsSvc)
	exportSvc := service.NewExportService(studentSvc, assessmentSvc, logr, nil, nil)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(internalmiddleware.Metrics(metricsSvc, "/health", "/ready", "/metrics"))
	}

	handler.Register(r, handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, cookie),
		Campus:     handler.NewCampusHandler(campusSvc),
		Professor:  handler.NewProfessorHandler(professorSvc),
		Student:    handler.NewStudentHandler(studentSvc, exportSvc),
		Assessment: handler.NewAssessmentHandler(assessmentSvc, exportSvc),
		Metrics:    handler.NewMetricsHandler(metricsSvc, db, logr),
	}, handler.RouteOptions{
		Prefix:         cfg.APIPrefix,
		Resolver:       authSvc,
		Cookie:         cookie,
		MetricsEnabled: metricsSvc != nil,
		AuditLogger:    logr.Named("audit"),
	})

	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
