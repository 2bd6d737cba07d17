package services

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageKitClientUpload(t *testing.T) {
	var gotAuthUser, gotFile, gotFileName, gotFolder string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthUser, _, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotFile = r.FormValue("file")
		gotFileName = r.FormValue("fileName")
		gotFolder = r.FormValue("folder")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"fileId": "abc123",
			"name": "product_1_menu.png",
			"url": "https://ik.test/flamius/menu.png",
			"thumbnailUrl": "https://ik.test/flamius/tr:n-thumb/menu.png"
		}`))
	}))
	defer server.Close()

	t.Setenv("IMAGEKIT_PRIVATE_KEY", "private_test_key")
	t.Setenv("IMAGEKIT_UPLOAD_URL", server.URL)

	client, err := NewImageKitClient()
	require.NoError(t, err)

	uploaded, err := client.UploadImage("menu.png", []byte("image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "private_test_key", gotAuthUser)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("image-bytes")), gotFile)
	assert.Contains(t, gotFileName, "menu.png")
	assert.Equal(t, "Flamius", gotFolder)

	assert.Equal(t, "abc123", uploaded.FileID)
	assert.Equal(t, "https://ik.test/flamius/menu.png", uploaded.URL)
	assert.Equal(t, "https://ik.test/flamius/tr:n-thumb/menu.png", uploaded.ThumbnailURL)
	assert.Equal(t, "product_1_menu.png", uploaded.Name)
}

func TestImageKitClientSurfacesProviderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"bad key"}`))
	}))
	defer server.Close()

	t.Setenv("IMAGEKIT_PRIVATE_KEY", "private_test_key")
	t.Setenv("IMAGEKIT_UPLOAD_URL", server.URL)

	client, err := NewImageKitClient()
	require.NoError(t, err)

	_, err = client.UploadImage("menu.png", []byte("image-bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestImageKitClientSurfacesTruncatedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Advertise more body than we send, then drop the connection so
		// the client's read fails mid-stream on a 200.
		w.Header().Set("Content-Length", "500")
		w.Write([]byte(`{"fileId":`))
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	}))
	defer server.Close()

	t.Setenv("IMAGEKIT_PRIVATE_KEY", "private_test_key")
	t.Setenv("IMAGEKIT_UPLOAD_URL", server.URL)

	client, err := NewImageKitClient()
	require.NoError(t, err)

	_, err = client.UploadImage("menu.png", []byte("image-bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read image storage response")
}

func TestNewImageKitClientRequiresKey(t *testing.T) {
	t.Setenv("IMAGEKIT_PRIVATE_KEY", "")
	_, err := NewImageKitClient()
	assert.Error(t, err)
}

func TestResetPasswordEmail(t *testing.T) {
	body, err := ResetPasswordEmail("Ravi", "https://app.test/reset-password/tok123")
	require.NoError(t, err)
	assert.Contains(t, body, "Ravi")
	assert.Contains(t, body, "https://app.test/reset-password/tok123")
}
