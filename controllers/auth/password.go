package authControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/models"
	"github.com/RajAryan1001/Flamius/services"
)

// resetLinkBase is where the reset email points; the frontend route takes
// the token and calls update-password with it.
func resetLinkBase() string {
	if base := os.Getenv("APP_URL"); base != "" {
		return base
	}
	return "http://localhost:5173"
}

// ForgotPasswordHandler mails a 15-minute reset link to a known account.
func ForgotPasswordHandler(db *gorm.DB, mailer services.MailSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
			return
		}

		token, err := issueResetToken(user.ID)
		if err != nil {
			log.Println("❌ Failed to sign reset token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		link := fmt.Sprintf("%s/reset-password/%s", resetLinkBase(), token)
		body, err := services.ResetPasswordEmail(user.Name, link)
		if err != nil {
			log.Println("❌ Failed to render reset email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		if err := mailer.Send(user.Email, "Reset Your Password", body, true); err != nil {
			log.Println("❌ Failed to send reset email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Reset link sent to %s", user.Email)})
	}
}

// ResetPasswordHandler is the link landing: it decodes the token and hands
// the user id back so the client can call update-password.
func ResetPasswordHandler(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token required"})
		return
	}

	id, err := verifyUserToken(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Token expired"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UpdatePasswordHandler re-verifies the reset token against the id in the
// URL and persists the new password.
func UpdatePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req struct {
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirmPassword"`
			Token           string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
			return
		}

		tokenID, err := verifyUserToken(req.Token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Token expired"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token"})
			return
		}
		if tokenID != id {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token"})
			return
		}

		if req.Password == "" || req.ConfirmPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password and confirmPassword required"})
			return
		}
		if req.Password != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Passwords do not match"})
			return
		}
		if len(req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password too short"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		if err != nil {
			log.Println("❌ Password hashing failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
			log.Println("❌ Failed to update password:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully", "redirect": "/api/user/login"})
	}
}
