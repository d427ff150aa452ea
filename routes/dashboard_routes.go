package routes

import (
	"school-cms-backend/app/service"
	"school-cms-backend/middleware"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(r *gin.Engine, s service.DashboardService) {
	dashboard := r.Group("/api/v1/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/", s.GetTotals)
	}
}
