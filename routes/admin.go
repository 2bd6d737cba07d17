package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/RajAryan1001/Flamius/controllers/admin"
	"github.com/RajAryan1001/Flamius/middleware"
	"github.com/RajAryan1001/Flamius/services"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, mailer services.MailSender) {
	admin := r.Group("/api/admin")
	{
		admin.POST("/send-otp", middleware.VerifyAdminEmail, adminControllers.SendOTPHandler(db, mailer))
		admin.POST("/verify-otp", middleware.VerifyAdminEmail, adminControllers.VerifyOTPHandler(db))

		admin.GET("/export/orders", middleware.RequireAdmin, adminControllers.ExportOrdersToExcel(db))
		admin.GET("/export/products", middleware.RequireAdmin, adminControllers.ExportProductsToExcel(db))
	}
}
