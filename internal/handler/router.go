package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/avaliacao-fisica-api/internal/auth"
	"github.com/noah-isme/avaliacao-fisica-api/internal/middleware"
)

// Handlers groups the route handlers registered by Register.
type Handlers struct {
	Auth       *AuthHandler
	Campus     *CampusHandler
	Professor  *ProfessorHandler
	Student    *StudentHandler
	Assessment *AssessmentHandler
	Metrics    *MetricsHandler
}

// RouteOptions controls route registration.
type RouteOptions struct {
	Prefix         string
	Resolver       middleware.PrincipalResolver
	Cookie         auth.Cookie
	MetricsEnabled bool
	AuditLogger    *zap.Logger
}

// Register mounts every API route on router.
func Register(router *gin.Engine, h Handlers, opts RouteOptions) {
	router.GET("/health", h.Metrics.Health)
	router.GET("/ready", h.Metrics.Ready)
	if opts.MetricsEnabled {
		router.GET("/metrics", h.Metrics.Prometheus)
	}

	authenticated := middleware.AuthenticationRequired(opts.Resolver, opts.Cookie)

	api := router.Group(opts.Prefix)
	if prefix := strings.TrimRight(opts.Prefix, "/"); prefix != "" {
		api.GET("/health", h.Metrics.Health)
		api.GET("/ready", h.Metrics.Ready)
	}

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.GET("/me", authenticated, h.Auth.Me)

	api.GET("/campus", h.Campus.List)

	admin := api.Group("/admin", authenticated, middleware.AdminOnly())
	admin.GET("/professors", h.Professor.List)
	admin.POST("/professors", middleware.Audit(opts.AuditLogger, "professor.create"), h.Professor.Create)
	admin.GET("/professors/:id", h.Professor.Get)
	admin.PUT("/professors/:id", middleware.Audit(opts.AuditLogger, "professor.update"), h.Professor.Update)
	admin.PATCH("/professors/:id/status", middleware.Audit(opts.AuditLogger, "professor.status"), h.Professor.SetStatus)
	admin.DELETE("/professors/:id", middleware.Audit(opts.AuditLogger, "professor.delete"), h.Professor.Delete)

	students := api.Group("/alunos", authenticated)
	students.GET("", h.Student.List)
	students.GET("/export.csv", h.Student.Export)
	students.POST("", h.Student.Create)
	students.GET("/:id", h.Student.Get)
	students.PUT("/:id", h.Student.Update)
	students.PATCH("/:id/status", h.Student.SetStatus)
	students.DELETE("/:id", h.Student.Delete)

	assessments := api.Group("/avaliacoes", authenticated)
	assessments.GET("", h.Assessment.List)
	assessments.POST("", h.Assessment.Create)
	assessments.GET("/:id", h.Assessment.Get)
	assessments.PUT("/:id", h.Assessment.Update)
	assessments.GET("/:id/relatorio.pdf", h.Assessment.Report)
}
