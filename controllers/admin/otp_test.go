package adminControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/models"
	"github.com/RajAryan1001/Flamius/routes"
)

const adminEmail = "owner@flamius.test"

type sentMail struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string, html bool) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body, HTML: html})
	return nil
}

func newAdminRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeMailer) {
	t.Helper()
	t.Setenv("ADMIN_EMAIL", adminEmail)
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.Order{}, &models.OrderItem{}, &models.Product{}, &models.ProductImage{}))

	mailer := &fakeMailer{}
	r := gin.New()
	routes.SetupAdminRoutes(r, db, mailer)
	return r, db, mailer
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestSendOTPRejectsNonAdminEmail(t *testing.T) {
	r, _, _ := newAdminRouter(t)

	w := postJSON(t, r, "/api/admin/send-otp", gin.H{"email": "not-admin@x.com"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied: Not an admin email", message(t, w))
}

func TestSendOTPPersistsAndMails(t *testing.T) {
	r, db, mailer := newAdminRouter(t)

	w := postJSON(t, r, "/api/admin/send-otp", gin.H{"email": adminEmail})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var admin models.Admin
	require.NoError(t, db.Where("email = ?", adminEmail).First(&admin).Error)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), admin.OTP)
	require.NotNil(t, admin.OTPExpires)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), *admin.OTPExpires, 5*time.Second)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, adminEmail, mailer.sent[0].To)
	assert.Equal(t, "Admin Login OTP", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Body, admin.OTP)
	assert.False(t, mailer.sent[0].HTML)
}

func TestSendOTPReplacesPreviousCode(t *testing.T) {
	r, db, _ := newAdminRouter(t)

	require.Equal(t, http.StatusOK, postJSON(t, r, "/api/admin/send-otp", gin.H{"email": adminEmail}).Code)
	var first models.Admin
	require.NoError(t, db.Where("email = ?", adminEmail).First(&first).Error)

	require.Equal(t, http.StatusOK, postJSON(t, r, "/api/admin/send-otp", gin.H{"email": adminEmail}).Code)

	var count int64
	require.NoError(t, db.Model(&models.Admin{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "one record per admin email")
}

func TestSendOTPMailFailureSurfacesAs500(t *testing.T) {
	r, _, mailer := newAdminRouter(t)
	mailer.err = assert.AnError

	w := postJSON(t, r, "/api/admin/send-otp", gin.H{"email": adminEmail})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVerifyOTPWithoutRecord(t *testing.T) {
	r, _, _ := newAdminRouter(t)

	w := postJSON(t, r, "/api/admin/verify-otp", gin.H{"email": adminEmail, "otp": "123456"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Admin not found", message(t, w))
}

func TestVerifyOTPWrongCode(t *testing.T) {
	r, db, _ := newAdminRouter(t)

	require.Equal(t, http.StatusOK, postJSON(t, r, "/api/admin/send-otp", gin.H{"email": adminEmail}).Code)

	var admin models.Admin
	require.NoError(t, db.Where("email = ?", adminEmail).First(&admin).Error)
	wrong := "000000"
	if admin.OTP == wrong {
		wrong = "000001"
	}

	w := postJSON(t, r, "/api/admin/verify-otp", gin.H{"email": adminEmail, "otp": wrong})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid OTP", message(t, w))
}

func TestVerifyOTPExpiry(t *testing.T) {
	r, db, _ := newAdminRouter(t)

	require.Equal(t, http.StatusOK, postJSON(t, r, "/api/admin/send-otp", gin.H{"email": adminEmail}).Code)
	var admin models.Admin
	require.NoError(t, db.Where("email = ?", adminEmail).First(&admin).Error)

	// One second past the 5-minute window: rejected
	expired := time.Now().Add(-time.Second)
	require.NoError(t, db.Model(&admin).Update("otp_expires", &expired).Error)

	w := postJSON(t, r, "/api/admin/verify-otp", gin.H{"email": adminEmail, "otp": admin.OTP})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "OTP expired", message(t, w))

	// One second left on the clock: accepted
	almost := time.Now().Add(time.Second)
	require.NoError(t, db.Model(&admin).Update("otp_expires", &almost).Error)

	w = postJSON(t, r, "/api/admin/verify-otp", gin.H{"email": adminEmail, "otp": admin.OTP})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestVerifyOTPClearsStateAndIssuesToken(t *testing.T) {
	r, db, _ := newAdminRouter(t)

	require.Equal(t, http.StatusOK, postJSON(t, r, "/api/admin/send-otp", gin.H{"email": adminEmail}).Code)
	var admin models.Admin
	require.NoError(t, db.Where("email = ?", adminEmail).First(&admin).Error)

	w := postJSON(t, r, "/api/admin/verify-otp", gin.H{"email": adminEmail, "otp": admin.OTP})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Admin login successful!", body["message"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	var after models.Admin
	require.NoError(t, db.Where("email = ?", adminEmail).First(&after).Error)
	assert.Empty(t, after.OTP)
	assert.Nil(t, after.OTPExpires)

	// A cleared OTP cannot be replayed
	w = postJSON(t, r, "/api/admin/verify-otp", gin.H{"email": adminEmail, "otp": admin.OTP})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The issued token opens the export routes
	req := httptest.NewRequest(http.MethodGet, "/api/admin/export/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportRequiresAdminToken(t *testing.T) {
	r, _, _ := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/export/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
