package routes

import (
	"school-cms-backend/app/service"
	"school-cms-backend/middleware"

	"github.com/gin-gonic/gin"
)

// AuthRoutes mendaftarkan endpoint autentikasi admin.
// Signup dan login terbuka; reset password dan hapus admin wajib JWT.
func AuthRoutes(r *gin.Engine, s service.AuthService) {
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/signup", s.Signup)
		auth.POST("/login", s.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.PUT("/reset-password", s.ResetPassword)
			protected.GET("/admins", s.GetAdmins)
			protected.DELETE("/admin/:adminId", s.DeleteAdmin)
		}
	}
}
