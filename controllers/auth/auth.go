package authControllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/models"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Deprecated: legacy clients send the misspelled field. Login only.
	Passoword string `json:"passoword"`
}

func setAuthCookie(c *gin.Context, token string) {
	secure := os.Getenv("COOKIE_SECURE") == "true"
	c.SetCookie("token", token, int(sessionTokenTTL.Seconds()), "/", "", secure, true)
}

func publicUser(user models.User) gin.H {
	return gin.H{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"mobile": user.Mobile,
	}
}

// RegisterHandler creates an account and logs the user straight in.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}

		var missing []string
		if req.Name == "" {
			missing = append(missing, "name")
		}
		if req.Email == "" {
			missing = append(missing, "email")
		}
		if req.Password == "" {
			missing = append(missing, "password")
		}
		if req.Mobile == "" {
			missing = append(missing, "mobile")
		}
		if len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Missing required fields: " + strings.Join(missing, ", "),
			})
			return
		}

		if !mobilePattern.MatchString(req.Mobile) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Mobile must be a 10 digit number"})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("❌ Register lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		if err != nil {
			log.Println("❌ Password hashing failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		user := models.User{
			ID:       uuid.NewString(),
			Name:     req.Name,
			Email:    req.Email,
			Mobile:   req.Mobile,
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Println("❌ Failed to create user:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		token, err := issueSessionToken(user.ID)
		if err != nil {
			log.Println("❌ Failed to sign session token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		setAuthCookie(c, token)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"user":    publicUser(user),
			"token":   token,
		})
	}
}

// LoginHandler verifies credentials and issues the same token as register.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}

		// Legacy field fallback, kept for old clients.
		if req.Password == "" && req.Passoword != "" {
			req.Password = req.Passoword
		}

		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User not found"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		token, err := issueSessionToken(user.ID)
		if err != nil {
			log.Println("❌ Failed to sign session token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		setAuthCookie(c, token)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User logged in successfully",
			"user":    publicUser(user),
			"token":   token,
		})
	}
}

// LogoutHandler clears the session cookie.
func LogoutHandler(c *gin.Context) {
	secure := os.Getenv("COOKIE_SECURE") == "true"
	c.SetCookie("token", "", -1, "/", "", secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// HomeHandler is a protected ping used by clients to check their session.
func HomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Home Page"})
}
