package adminControllers

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/models"
	"github.com/RajAryan1001/Flamius/services"
)

const otpTTL = 5 * time.Minute

func generateOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(900000)+100000)
}

// issueAdminToken signs the 7-day admin session used by export routes.
func issueAdminToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// SendOTPHandler issues a fresh 6-digit code with a 5-minute expiry and
// mails it to the admin address. Runs behind VerifyAdminEmail.
func SendOTPHandler(db *gorm.DB, mailer services.MailSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email required"})
			return
		}

		if req.Email != os.Getenv("ADMIN_EMAIL") {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied: Not an admin email"})
			return
		}

		otp := generateOTP()
		expires := time.Now().Add(otpTTL)

		var admin models.Admin
		err := db.Where("email = ?", req.Email).First(&admin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			admin = models.Admin{Email: req.Email}
		} else if err != nil {
			log.Println("❌ Admin lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending OTP"})
			return
		}

		admin.OTP = otp
		admin.OTPExpires = &expires
		if err := db.Save(&admin).Error; err != nil {
			log.Println("❌ Failed to persist OTP:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending OTP"})
			return
		}

		text := fmt.Sprintf("Your OTP for admin login is %s. It expires in 5 minutes.", otp)
		if err := mailer.Send(req.Email, "Admin Login OTP", text, false); err != nil {
			log.Println("❌ Failed to send OTP email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully to your email!"})
	}
}

// VerifyOTPHandler checks the submitted code, expiry is evaluated lazily
// here. On success the OTP fields are cleared and an admin token issued.
func VerifyOTPHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
			OTP   string `json:"otp"`
		}
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and otp required"})
			return
		}

		var admin models.Admin
		if err := db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
			return
		}

		if admin.OTP == "" || admin.OTP != req.OTP {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
			return
		}
		if admin.OTPExpires == nil || admin.OTPExpires.Before(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
			return
		}

		updates := map[string]interface{}{"otp": "", "otp_expires": nil}
		if err := db.Model(&admin).Updates(updates).Error; err != nil {
			log.Println("❌ Failed to clear OTP:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error verifying OTP"})
			return
		}

		token, err := issueAdminToken(admin.Email)
		if err != nil {
			log.Println("❌ Failed to sign admin token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error verifying OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin login successful!", "token": token})
	}
}
