package service

import (
	"context"
	"errors"
	"log"
	"mime/multipart"

	"anoa.com/presensisekolah/internal/entity"
	userRepo "anoa.com/presensisekolah/internal/modules/user/repository"
	"anoa.com/presensisekolah/pkg/apperror"
	"anoa.com/presensisekolah/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxUploadSize = 1 << 20 // 1MB
	uploadFolder  = "foto-guru"
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

type UploadService interface {
	UploadFoto(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	repo    userRepo.UserRepository
	storage storage.ImageStorage
}

func NewUploadService(repo userRepo.UserRepository, storage storage.ImageStorage) UploadService {
	return &uploadService{
		repo:    repo,
		storage: storage,
	}
}

// UploadFoto stores the uploaded photo and points the guru profile at it.
// The previous photo, if any, is removed best effort.
func (s *uploadService) UploadFoto(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	if err := ValidateFoto(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", apperror.BadRequest("File tidak dapat dibaca")
	}
	defer src.Close()

	url, err := s.storage.UploadImage(ctx, src, uploadFolder, file.Filename)
	if err != nil {
		return "", err
	}

	var oldURL string
	guru, err := s.repo.FindGuruByUserID(ctx, userID)
	switch {
	case err == nil:
		if guru.FotoURL != nil {
			oldURL = *guru.FotoURL
		}
		if err := s.repo.UpdateGuruFields(ctx, userID, map[string]interface{}{"foto_url": url}); err != nil {
			return "", err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.repo.CreateGuru(ctx, newGuruWithFoto(userID, url)); err != nil {
			return "", err
		}
	default:
		return "", err
	}

	if oldURL != "" && oldURL != url {
		if err := s.storage.DeleteImage(ctx, oldURL); err != nil {
			log.Printf("gagal menghapus foto lama %s: %v", oldURL, err)
		}
	}

	return url, nil
}

func newGuruWithFoto(userID uuid.UUID, url string) *entity.Guru {
	return &entity.Guru{
		UserID:  userID,
		FotoURL: &url,
	}
}

// ValidateFoto checks size and content type before anything touches storage.
func ValidateFoto(file *multipart.FileHeader) error {
	if file == nil {
		return apperror.BadRequest("File tidak ditemukan")
	}
	if file.Size > maxUploadSize {
		return apperror.BadRequest("Ukuran file maksimal 1MB")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return apperror.BadRequest("Tipe file tidak didukung")
	}

	return nil
}
