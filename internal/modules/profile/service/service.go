package service

import (
	"context"
	"errors"

	"anoa.com/presensisekolah/internal/entity"
	profileDto "anoa.com/presensisekolah/internal/modules/profile/dto"
	userRepo "anoa.com/presensisekolah/internal/modules/user/repository"
	"anoa.com/presensisekolah/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// adminOnlyColumns may only be written by admin roles. A non-admin request
// that names any of them is rejected wholesale, even if the value is
// unchanged.
var adminOnlyColumns = map[string]bool{
	"nip":                true,
	"mapel":              true,
	"status_kepegawaian": true,
	"tanggal_bergabung":  true,
}

type ProfileService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, role string, input *profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error)
}

type profileService struct {
	repo userRepo.UserRepository
}

func NewProfileService(repo userRepo.UserRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) GetMe(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Guru tidak ditemukan")
		}
		return nil, err
	}

	return profileDto.NewProfileResponse(user), nil
}

func (s *profileService) UpdateMe(ctx context.Context, userID uuid.UUID, role string, input *profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error) {
	isAdmin := entity.IsAdminRole(role)

	if !isAdmin {
		for col := range input.Fields {
			if adminOnlyColumns[col] {
				return nil, apperror.Forbidden("Field NIP, Mapel, Status, dan Tanggal Bergabung hanya dapat diubah oleh admin")
			}
		}
		if input.RoleSet {
			return nil, apperror.Forbidden("Role hanya dapat diubah oleh admin")
		}
	}

	if err := validateEnums(input); err != nil {
		return nil, err
	}

	// Lazily create the guru row before applying the update.
	if _, err := s.repo.FindGuruByUserID(ctx, userID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err := s.repo.CreateGuru(ctx, &entity.Guru{UserID: userID}); err != nil {
			return nil, err
		}
	}

	// Missing-means-unchanged merge: only the submitted columns are written,
	// and an explicit null clears the column.
	columns := make(map[string]interface{}, len(input.Fields))
	for col, val := range input.Fields {
		if val == nil {
			columns[col] = nil
		} else {
			columns[col] = *val
		}
	}
	if err := s.repo.UpdateGuruFields(ctx, userID, columns); err != nil {
		return nil, err
	}

	if input.RoleSet && input.Role != nil {
		user, err := s.repo.FindByID(ctx, userID.String())
		if err != nil {
			return nil, err
		}
		user.Role = *input.Role
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	// Re-read and return the stored state as the authoritative post-state.
	user, err := s.repo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	return profileDto.NewProfileResponse(user), nil
}

func validateEnums(input *profileDto.UpdateProfileInput) error {
	if jk, ok := input.Fields["jenis_kelamin"]; ok && jk != nil {
		if *jk != "L" && *jk != "P" {
			return apperror.BadRequest("Jenis kelamin tidak valid")
		}
	}

	if sk, ok := input.Fields["status_kepegawaian"]; ok && sk != nil {
		switch *sk {
		case "aktif", "cuti", "nonaktif":
		default:
			return apperror.BadRequest("Status kepegawaian tidak valid")
		}
	}

	if input.RoleSet {
		if input.Role == nil || !entity.ValidRole(*input.Role) {
			return apperror.BadRequest("Role tidak valid")
		}
	}

	return nil
}
