package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/models"
)

// preloadOwner loads only the owner's public fields alongside a product.
func preloadOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	})
}

// GetAllProducts returns the whole catalog with owner name/email populated.
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := []models.Product{}
		if err := preloadOwner(db).Preload("Images").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		message := "Products fetched successfully"
		if len(products) == 0 {
			message = "No products found"
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": message,
			"data":    products,
		})
	}
}
