package services

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
)

func multipartHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("projectFiles", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/projects", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["projectFiles"]
}

func TestProcessInlinesFilesWithoutUploadDir(t *testing.T) {
	svc, err := NewUploadService("", "http://localhost:5000", 0)
	require.NoError(t, err)

	headers := multipartHeaders(t, map[string]string{"report.pdf": "pdf-bytes"})
	descriptors, err := svc.Process(headers)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	assert.Equal(t, "report.pdf", descriptors[0].Name)
	assert.Empty(t, descriptors[0].URL)

	decoded, err := base64.StdEncoding.DecodeString(descriptors[0].Data)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(decoded))
}

func TestProcessStoresFilesOnDisk(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewUploadService(dir, "http://localhost:5000", 0)
	require.NoError(t, err)

	headers := multipartHeaders(t, map[string]string{"demo.png": "png-bytes"})
	descriptors, err := svc.Process(headers)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	assert.Equal(t, "demo.png", descriptors[0].Name)
	assert.Empty(t, descriptors[0].Data)
	require.True(t, strings.HasPrefix(descriptors[0].URL, "http://localhost:5000/uploads/"))
	assert.True(t, strings.HasSuffix(descriptors[0].URL, ".png"))

	storedName := strings.TrimPrefix(descriptors[0].URL, "http://localhost:5000/uploads/")
	content, err := os.ReadFile(filepath.Join(dir, storedName))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestProcessRejectsOversizedFile(t *testing.T) {
	svc, err := NewUploadService("", "http://localhost:5000", 4)
	require.NoError(t, err)

	headers := multipartHeaders(t, map[string]string{"big.bin": "more than four bytes"})
	_, err = svc.Process(headers)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestProcessEmptyInput(t *testing.T) {
	svc, err := NewUploadService("", "http://localhost:5000", 0)
	require.NoError(t, err)

	descriptors, err := svc.Process(nil)
	require.NoError(t, err)
	assert.Nil(t, descriptors)
}
