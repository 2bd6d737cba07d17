package productControllers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/models"
	"github.com/RajAryan1001/Flamius/services"
)

// UpdateProduct merges the supplied fields into an existing menu item.
// New image files replace the stored set; nothing is merged.
func UpdateProduct(db *gorm.DB, storage services.ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		updates := make(map[string]interface{})

		if title := c.PostForm("title"); title != "" {
			updates["title"] = title
		}
		if description := c.PostForm("description"); description != "" {
			updates["description"] = description
		}

		currency := c.PostForm("currency")
		if currency != "" &&
			currency != string(models.CurrencyINR) &&
			currency != string(models.CurrencyDollar) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Currency must be INR or DOLLAR"})
			return
		}

		if raw := c.PostForm("amount"); raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil || amount <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Price amount must be a valid positive number",
				})
				return
			}
			updates["price_amount"] = amount
			if currency != "" {
				updates["price_currency"] = currency
			}
		} else if currency != "" {
			updates["price_currency"] = currency
		}

		var files []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil && form != nil {
			files = form.File["images"]
		}

		var newImages []models.ProductImage
		if len(files) > 0 {
			if msg := checkImageFiles(files); msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
				return
			}
			uploaded, err := uploadImages(storage, files)
			if err != nil {
				log.Println("❌ Image upload failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Image upload failed"})
				return
			}
			newImages = uploaded
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if len(updates) > 0 {
				if err := tx.Model(&product).Updates(updates).Error; err != nil {
					return err
				}
			}
			if len(newImages) > 0 {
				if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
					return err
				}
				for i := range newImages {
					newImages[i].ProductID = id
				}
				if err := tx.Create(&newImages).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Println("❌ Failed to update product:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		var updated models.Product
		if err := preloadOwner(db).Preload("Images").First(&updated, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product updated successfully",
			"data":    updated,
		})
	}
}
