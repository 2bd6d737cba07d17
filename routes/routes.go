package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/services"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, mailer services.MailSender, storage services.ImageStorage) {
	// User account routes (register/login/password flows)
	SetupUserRoutes(r, db, mailer)

	// Product catalog routes
	SetupProductRoutes(r, db, storage)

	// Order routes
	SetupOrderRoutes(r, db)

	// Admin OTP gate + exports
	SetupAdminRoutes(r, db, mailer)
}
