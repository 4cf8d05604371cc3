package middleware

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys under which saved upload paths are stored for the handler.
const (
	UploadedFileKey  = "uploaded_file"
	UploadedFilesKey = "uploaded_files"
)

var errUnsupportedFileType = errors.New("not supporting this mimetype")

// UploadSingleFile accepts one image file from the named multipart field and
// writes it under uploads/<folder> before the handler runs. The saved path is
// stored in the context under UploadedFileKey.
func UploadSingleFile(field, folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile(field)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": field + " file is required"})
			c.Abort()
			return
		}

		path, err := saveImage(c, file, folder)
		if err != nil {
			abortUpload(c, err)
			return
		}

		c.Set(UploadedFileKey, path)
		c.Next()
	}
}

// UploadMultipleFiles accepts one image per named field. Saved paths are
// stored in the context under UploadedFilesKey as a map keyed by field name.
func UploadMultipleFiles(fields []string, folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		paths := make(map[string]string, len(fields))
		for _, field := range fields {
			file, err := c.FormFile(field)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": field + " file is required"})
				c.Abort()
				return
			}
			path, err := saveImage(c, file, folder)
			if err != nil {
				abortUpload(c, err)
				return
			}
			paths[field] = path
		}

		c.Set(UploadedFilesKey, paths)
		c.Next()
	}
}

// saveImage rejects anything that does not declare an image content type,
// then writes the file with a random token prefixed to the client-supplied
// name so concurrent uploads never collide.
func saveImage(c *gin.Context, file *multipart.FileHeader, folder string) (string, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", errUnsupportedFileType
	}

	dir := filepath.Join(uploadBaseDir(), folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + " - " + file.Filename
	path := filepath.Join(dir, filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func abortUpload(c *gin.Context, err error) {
	if errors.Is(err, errUnsupportedFileType) {
		// Kept at 401 to match the behavior clients already rely on.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not supporting this mimetype"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file: " + err.Error()})
	}
	c.Abort()
}

func uploadBaseDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}
