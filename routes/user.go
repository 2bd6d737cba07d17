package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/RajAryan1001/Flamius/controllers/auth"
	"github.com/RajAryan1001/Flamius/middleware"
	"github.com/RajAryan1001/Flamius/services"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB, mailer services.MailSender) {
	user := r.Group("/api/user")
	{
		user.POST("/register", authControllers.RegisterHandler(db))
		user.POST("/login", authControllers.LoginHandler(db))
		user.POST("/logout", authControllers.LogoutHandler)

		user.POST("/forgot-password", authControllers.ForgotPasswordHandler(db, mailer))
		user.GET("/reset-password/:token", authControllers.ResetPasswordHandler)
		user.POST("/update-password/:id", authControllers.UpdatePasswordHandler(db))

		// Session check for logged-in clients
		user.GET("/home", middleware.ValidateToken, authControllers.HomeHandler)
	}
}
