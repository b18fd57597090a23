package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// UploadDir is where image files land. Overridable for tests and deploys.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// saveImage stores the optional multipart "image" field on disk under a
// unique timestamped name and returns the relative path to persist, or ""
// when the request carries no image.
func saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := os.MkdirAll(UploadDir(), 0o755); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, filepath.Join(UploadDir(), name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// absoluteImageURL rewrites a stored relative image path to a full URL for
// the requesting client. Storage only ever sees relative paths.
func absoluteImageURL(c *gin.Context, image string) string {
	if image == "" {
		return ""
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + image
}
