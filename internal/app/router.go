package app

import (
	"school_records_backend/docs"
	"school_records_backend/internal/config"
	"school_records_backend/internal/middleware"
	"school_records_backend/internal/model"
	"school_records_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStaffRoutes(authGroup, c)
		a.registerSecretaryRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}
}

// teachers, secretaries and admins
func (a *App) registerStaffRoutes(group *gin.RouterGroup, c *controllers) {
	staff := group.Group("")
	staff.Use(middleware.RoleMiddleware(model.Teacher, model.Secretary))
	{
		staff.PUT("/enrollments/:id/grades/:componentId", c.grade.SaveGrade)
		staff.GET("/enrollments/:id/grades", c.grade.ListEnrollmentGrades)
		staff.GET("/enrollments/:id/result", c.approval.StudentResult)
		staff.POST("/grades/preview", c.grade.PreviewAverage)
		staff.GET("/classes/:id/results", c.approval.ClassResults)
		staff.GET("/approval-rules", c.rules.GetRules)
	}
}

func (a *App) registerSecretaryRoutes(group *gin.RouterGroup, c *controllers) {
	secretary := group.Group("")
	secretary.Use(middleware.RoleMiddleware(model.Secretary))
	{
		secretary.POST("/classes/:id/results/export", c.approval.ExportClassResults)
		secretary.GET("/classes/:id/results/exports", c.approval.ListExports)
		secretary.PUT("/approval-rules", c.rules.SaveRules)
	}
}
