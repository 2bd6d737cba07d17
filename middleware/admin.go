package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// VerifyAdminEmail rejects OTP requests for anything but the configured
// admin address before the handler runs. Uses ShouldBindBodyWith so the
// handler can read the body again.
func VerifyAdminEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}

	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email required"})
		c.Abort()
		return
	}

	if req.Email != os.Getenv("ADMIN_EMAIL") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied: Not an admin email"})
		c.Abort()
		return
	}

	c.Next()
}
