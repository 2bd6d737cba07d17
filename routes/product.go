package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/RajAryan1001/Flamius/controllers/product"
	"github.com/RajAryan1001/Flamius/middleware"
	"github.com/RajAryan1001/Flamius/services"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB, storage services.ImageStorage) {
	product := r.Group("/api/product")
	{
		product.GET("/get-products", productControllers.GetAllProducts(db))

		// Mutations need a logged-in owner for the user association
		product.POST("/create-product",
			middleware.ValidateToken,
			productControllers.CreateProduct(db, storage))
		product.PUT("/update-product/:id",
			middleware.ValidateToken,
			middleware.ValidateUUID("id"),
			productControllers.UpdateProduct(db, storage))
		product.DELETE("/delete-product/:id",
			middleware.ValidateUUID("id"),
			productControllers.DeleteProduct(db))
	}
}
