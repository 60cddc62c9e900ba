package adminController

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// imageTypes maps accepted upload content types to the extension used when
// the client filename has none.
var imageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// uploadName picks "<uuid>.<ext>" for an upload, keeping the client's
// extension when it is a plain short word.
func uploadName(filename, contentType string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filepath.Base(filename)), "."))
	if !plainExt(ext) {
		ext = imageTypes[contentType]
	}
	return uuid.NewString() + "." + ext
}

func plainExt(ext string) bool {
	if ext == "" || len(ext) > 5 {
		return false
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// UploadImage stores a product image in uploadDir and returns its public URL
// under /static/uploads.
func UploadImage(uploadDir, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			apperr.Respond(c, apperr.InvalidInput("No file uploaded"))
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if _, ok := imageTypes[contentType]; !ok {
			apperr.Respond(c, apperr.InvalidInput("File must be an image (JPEG, PNG, WebP, or GIF)"))
			return
		}

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			apperr.Respond(c, apperr.Internal(err, "Failed to create upload folder"))
			return
		}

		filename := uploadName(fileHeader.Filename, contentType)
		if err := c.SaveUploadedFile(fileHeader, filepath.Join(uploadDir, filename)); err != nil {
			apperr.Respond(c, apperr.Internal(err, "Failed to save file"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"url":      fmt.Sprintf("%s/static/uploads/%s", publicBaseURL, filename),
			"filename": filename,
		})
	}
}
