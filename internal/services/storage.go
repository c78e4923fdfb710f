package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hirelens/applicant-evaluator/internal/models"
)

var allowedExtensions = map[models.DocumentKind][]string{
	models.DocumentKindResume: {".pdf"},
	models.DocumentKindAudio:  {".mp3", ".wav", ".m4a", ".ogg", ".webm"},
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader, kind models.DocumentKind) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader, kind models.DocumentKind) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extensionAllowed(kind, ext) {
		return "", "", fmt.Errorf("invalid %s file extension: %s", kind, ext)
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", kind, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func extensionAllowed(kind models.DocumentKind, ext string) bool {
	for _, allowed := range allowedExtensions[kind] {
		if ext == allowed {
			return true
		}
	}
	return false
}
