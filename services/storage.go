package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// UploadedImage is what the image host returns for one stored file.
type UploadedImage struct {
	FileID       string `json:"fileId"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// ImageStorage is what the product controllers depend on.
type ImageStorage interface {
	UploadImage(fileName string, data []byte) (*UploadedImage, error)
}

// ImageKitClient uploads product images to ImageKit over its REST API.
type ImageKitClient struct {
	uploadURL  string
	privateKey string
	folder     string
	client     *http.Client
}

// NewImageKitClient builds a client from IMAGEKIT_PRIVATE_KEY and, when set,
// IMAGEKIT_UPLOAD_URL (tests point it at a local server).
func NewImageKitClient() (*ImageKitClient, error) {
	privateKey := os.Getenv("IMAGEKIT_PRIVATE_KEY")
	if privateKey == "" {
		return nil, fmt.Errorf("imagekit configuration missing")
	}

	uploadURL := os.Getenv("IMAGEKIT_UPLOAD_URL")
	if uploadURL == "" {
		uploadURL = defaultUploadURL
	}

	return &ImageKitClient{
		uploadURL:  uploadURL,
		privateKey: privateKey,
		folder:     "Flamius",
		client:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// UploadImage sends one file and returns the hosted file metadata.
// No retry: a provider failure aborts the caller's request.
func (s *ImageKitClient) UploadImage(fileName string, data []byte) (*UploadedImage, error) {
	form := url.Values{}
	form.Set("file", base64.StdEncoding.EncodeToString(data))
	form.Set("fileName", fmt.Sprintf("product_%d_%s", time.Now().UnixMilli(), fileName))
	form.Set("folder", s.folder)

	req, err := http.NewRequest(http.MethodPost, s.uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.privateKey, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach image storage: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image storage response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image storage error (%d): %s", resp.StatusCode, string(body))
	}

	var uploaded UploadedImage
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return nil, fmt.Errorf("failed to parse image storage response: %v", err)
	}
	if uploaded.URL == "" {
		return nil, fmt.Errorf("image storage returned empty url")
	}

	return &uploaded, nil
}
