package uploadControllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/storage"
)

const (
	maxFileSize  = 10 << 20 // 10MB per file
	maxFileCount = 20
)

type FileResponse struct {
	FileName string `json:"file_name"`
	Key      string `json:"key"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// POST /uploads
// Handler accepts multipart images under "files", checks the image MIME
// allow-list and size/count limits, and forwards each file to object
// storage.
func Handler(uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
			return
		}

		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
			return
		}
		if len(files) > maxFileCount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Too many files, maximum is 20"})
			return
		}

		var responses []FileResponse
		for _, fileHeader := range files {
			contentType := fileHeader.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "image/") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
				return
			}
			if fileHeader.Size > maxFileSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB size limit"})
				return
			}

			body, err := readFile(fileHeader)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
				return
			}

			key, url, err := uploader.Upload(c.Request.Context(), fileHeader.Filename, contentType, body)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
				return
			}

			responses = append(responses, FileResponse{
				FileName: fileHeader.Filename,
				Key:      key,
				MimeType: contentType,
				Size:     fileHeader.Size,
				URL:      url,
			})
		}

		c.JSON(http.StatusCreated, responses)
	}
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
