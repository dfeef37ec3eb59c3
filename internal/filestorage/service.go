// File: internal/filestorage/service.go
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sub-directories for the two image kinds a profile carries. Images are
// opaque blobs; callers store only the returned URL path.
const (
	AvatarDir     = "avatars"
	IDDocumentDir = "id-documents"
)

// Service stores uploaded profile images on local disk under uuid names.
type Service struct {
	storagePath string // base directory, e.g. "./images"
	publicPath  string // URL prefix the images are served under, e.g. "/images"
	logger      *zap.Logger
}

// NewService creates the image store, ensuring the base directory exists.
func NewService(storagePath, publicPath string, logger *zap.Logger) (*Service, error) {
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(storagePath, os.ModePerm); err != nil {
		logger.Error("Failed to create storage path directory", zap.String("path", storagePath), zap.Error(err))
		return nil, fmt.Errorf("failed to create storage path %s: %w", storagePath, err)
	}
	logger.Info("File storage initialized", zap.String("storagePath", storagePath))
	return &Service{storagePath: storagePath, publicPath: publicPath, logger: logger}, nil
}

// SaveAvatar stores a profile picture and returns its public URL path.
func (s *Service) SaveAvatar(fileHeader *multipart.FileHeader) (string, error) {
	return s.save(fileHeader, AvatarDir)
}

// SaveIDDocument stores an identity-document image and returns its public URL
// path.
func (s *Service) SaveIDDocument(fileHeader *multipart.FileHeader) (string, error) {
	return s.save(fileHeader, IDDocumentDir)
}

func (s *Service) save(fileHeader *multipart.FileHeader, subDir string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	extension := filepath.Ext(filepath.Base(fileHeader.Filename))
	if extension == "" {
		contentType := fileHeader.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "image/jpeg"):
			extension = ".jpg"
		case strings.HasPrefix(contentType, "image/png"):
			extension = ".png"
		case strings.HasPrefix(contentType, "image/gif"):
			extension = ".gif"
		default:
			return "", fmt.Errorf("unsupported file type or missing extension: %s", contentType)
		}
	}
	uniqueFilename := uuid.New().String() + extension

	destinationDir := filepath.Join(s.storagePath, subDir)
	if err := os.MkdirAll(destinationDir, os.ModePerm); err != nil {
		s.logger.Error("Failed to create image sub-directory", zap.String("path", destinationDir), zap.Error(err))
		return "", fmt.Errorf("failed to create directory %s: %w", destinationDir, err)
	}

	destinationPath := filepath.Join(destinationDir, uniqueFilename)
	dst, err := os.Create(destinationPath)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.String("path", destinationPath), zap.Error(err))
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		s.logger.Error("Failed to write uploaded file", zap.String("path", destinationPath), zap.Error(err))
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("Image saved", zap.String("path", destinationPath))
	return path.Join(s.publicPath, subDir, uniqueFilename), nil
}

// Delete removes a stored image by its public URL path. Deleting a missing
// file is not an error.
func (s *Service) Delete(urlPath string) error {
	if urlPath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	relative := strings.TrimPrefix(urlPath, s.publicPath)
	cleanRelative := filepath.Clean(strings.TrimPrefix(relative, "/"))
	if strings.Contains(cleanRelative, "..") {
		s.logger.Warn("Attempt to delete file with path traversal", zap.String("path", urlPath))
		return fmt.Errorf("invalid file path for deletion")
	}

	fullPath := filepath.Join(s.storagePath, cleanRelative)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		s.logger.Warn("Attempt to delete non-existent file", zap.String("path", fullPath))
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		s.logger.Error("Failed to delete file", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	s.logger.Info("Image deleted", zap.String("path", fullPath))
	return nil
}
