package productControllers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/models"
	"github.com/RajAryan1001/Flamius/services"
)

const (
	maxImages    = 5
	maxImageSize = 5 << 20 // 5 MB per file
)

// parsePriceAmount accepts the amount as "price", "price[amount]" or
// "amount" form fields; clients send all three shapes.
func parsePriceAmount(c *gin.Context) (float64, bool) {
	raw := c.PostForm("price")
	if raw == "" {
		raw = c.PostForm("price[amount]")
	}
	if raw == "" {
		raw = c.PostForm("amount")
	}
	if raw == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// checkImageFiles enforces the upload limits: max 5 files, 5 MB each,
// image MIME types only. Returns a client-facing message on violation.
func checkImageFiles(files []*multipart.FileHeader) string {
	if len(files) > maxImages {
		return fmt.Sprintf("Too many files. Maximum is %d images.", maxImages)
	}
	for _, file := range files {
		if file.Size > maxImageSize {
			return "File too large. Maximum size is 5MB."
		}
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			return "Only image files are allowed"
		}
	}
	return ""
}

// uploadImages pushes every file to the image host. No retry; the first
// failure aborts the whole request.
func uploadImages(storage services.ImageStorage, files []*multipart.FileHeader) ([]models.ProductImage, error) {
	images := make([]models.ProductImage, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, err
		}

		uploaded, err := storage.UploadImage(file.Filename, data)
		if err != nil {
			return nil, err
		}
		images = append(images, models.ProductImage{
			FileID:       uploaded.FileID,
			URL:          uploaded.URL,
			ThumbnailURL: uploaded.ThumbnailURL,
			Name:         uploaded.Name,
		})
	}
	return images, nil
}

// CreateProduct creates a menu item from a multipart payload, uploading
// every image to external storage first. Requires a logged-in user.
func CreateProduct(db *gorm.DB, storage services.ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.PostForm("title")
		description := c.PostForm("description")
		amount, priceOK := parsePriceAmount(c)

		var files []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil && form != nil {
			files = form.File["images"]
		}

		if title == "" || description == "" || !priceOK || len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Title, description, price, and at least one image are required",
			})
			return
		}

		if amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Price must be a valid positive number",
			})
			return
		}

		if msg := checkImageFiles(files); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}

		images, err := uploadImages(storage, files)
		if err != nil {
			log.Println("❌ Image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Image upload failed"})
			return
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Title:       title,
			Description: description,
			Price: models.Price{
				Amount:   amount,
				Currency: models.CurrencyINR,
			},
			Images: images,
			UserID: userID,
		}
		if err := db.Create(&product).Error; err != nil {
			log.Println("❌ Failed to create product:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		if err := preloadOwner(db).Preload("Images").First(&product, "id = ?", product.ID).Error; err != nil {
			log.Println("❌ Failed to reload product:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product created successfully",
			"data":    product,
		})
	}
}
