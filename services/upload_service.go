package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
	"github.com/kwesi-koranteng/cityhub-backend/models"
)

// UploadService normalizes multipart uploads into file descriptors. With an
// upload directory configured, files go to disk and descriptors carry URLs;
// without one (no durable disk on the host) content is inlined as base64.
type UploadService interface {
	Process(files []*multipart.FileHeader) ([]models.FileDescriptor, error)
}

type uploadService struct {
	uploadDir string
	baseURL   string
	maxSize   int64
}

func NewUploadService(uploadDir, baseURL string, maxSize int64) (UploadService, error) {
	if uploadDir != "" {
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &uploadService{
		uploadDir: uploadDir,
		baseURL:   baseURL,
		maxSize:   maxSize,
	}, nil
}

func (s *uploadService) Process(files []*multipart.FileHeader) ([]models.FileDescriptor, error) {
	if len(files) == 0 {
		return nil, nil
	}

	descriptors := make([]models.FileDescriptor, 0, len(files))
	for _, header := range files {
		if s.maxSize > 0 && header.Size > s.maxSize {
			return nil, apperrors.InvalidArgument("file %s exceeds the upload size limit", header.Filename)
		}

		descriptor, err := s.processOne(header)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

func (s *uploadService) processOne(header *multipart.FileHeader) (models.FileDescriptor, error) {
	src, err := header.Open()
	if err != nil {
		return models.FileDescriptor{}, apperrors.InvalidArgument("unreadable file part %s", header.Filename)
	}
	defer src.Close()

	descriptor := models.FileDescriptor{
		Name: header.Filename,
		Type: header.Header.Get("Content-Type"),
	}

	if s.uploadDir == "" {
		data, err := io.ReadAll(src)
		if err != nil {
			return models.FileDescriptor{}, apperrors.Internal(err)
		}
		descriptor.Data = base64.StdEncoding.EncodeToString(data)
		return descriptor, nil
	}

	storedName := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.uploadDir, storedName))
	if err != nil {
		return models.FileDescriptor{}, apperrors.Internal(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return models.FileDescriptor{}, apperrors.Internal(err)
	}

	descriptor.URL = s.baseURL + "/uploads/" + storedName
	return descriptor, nil
}
