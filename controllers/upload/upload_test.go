package uploadControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploads int
	fail    bool
}

func (f *fakeUploader) Upload(ctx context.Context, originalName, contentType string, body []byte) (string, string, error) {
	if f.fail {
		return "", "", fmt.Errorf("bucket unreachable")
	}
	f.uploads++
	key := "uploads/" + originalName
	return key, "https://cdn.example.com/" + key, nil
}

func buildMultipart(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, contentType := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("file-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func performUpload(t *testing.T, uploader *fakeUploader, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/uploads", Handler(uploader))

	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImages(t *testing.T) {
	uploader := &fakeUploader{}
	body, contentType := buildMultipart(t, map[string]string{
		"photo.jpg": "image/jpeg",
		"logo.png":  "image/png",
	})

	w := performUpload(t, uploader, body, contentType)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, uploader.uploads)

	var responses []FileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responses))
	require.Len(t, responses, 2)
	for _, resp := range responses {
		assert.NotEmpty(t, resp.Key)
		assert.NotEmpty(t, resp.URL)
	}
}

func TestUploadRejectsNonImages(t *testing.T) {
	uploader := &fakeUploader{}
	body, contentType := buildMultipart(t, map[string]string{"notes.pdf": "application/pdf"})

	w := performUpload(t, uploader, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, uploader.uploads)
}

func TestUploadRejectsEmptyForm(t *testing.T) {
	uploader := &fakeUploader{}
	body, contentType := buildMultipart(t, nil)

	w := performUpload(t, uploader, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	uploader := &fakeUploader{}
	files := make(map[string]string)
	for i := 0; i < maxFileCount+1; i++ {
		files[fmt.Sprintf("photo-%d.jpg", i)] = "image/jpeg"
	}
	body, contentType := buildMultipart(t, files)

	w := performUpload(t, uploader, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, uploader.uploads)
}

func TestUploadStorageFailure(t *testing.T) {
	uploader := &fakeUploader{fail: true}
	body, contentType := buildMultipart(t, map[string]string{"photo.jpg": "image/jpeg"})

	w := performUpload(t, uploader, body, contentType)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
