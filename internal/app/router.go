package app

import (
	"child_growth_backend/docs"
	"child_growth_backend/internal/config"
	"child_growth_backend/internal/middleware"
	"child_growth_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	// 注释中的路由已带 /api 前缀
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerDailyAssessmentRoutes(authGroup, c)
	}
}

func (a *App) registerDailyAssessmentRoutes(group *gin.RouterGroup, c *controllers) {
	child := group.Group("/children/:childId")
	{
		child.POST("/daily-assessment/sessions", c.dailyAssessment.Begin)
		child.POST("/daily-assessment/sessions/:sessionId/replace", c.dailyAssessment.Replace)
		child.POST("/daily-assessment/sessions/:sessionId/submit", c.dailyAssessment.Submit)
		child.GET("/daily-assessment/today", c.dailyAssessment.Today)
		child.GET("/assessments", c.dailyAssessment.History)
	}
	group.GET("/assessments/:id", c.dailyAssessment.Result)
}
