package service

import (
	"context"
	"errors"

	"anoa.com/presensisekolah/internal/entity"
	adminDto "anoa.com/presensisekolah/internal/modules/admin/dto"
	userRepo "anoa.com/presensisekolah/internal/modules/user/repository"
	"anoa.com/presensisekolah/pkg/apperror"
	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]*adminDto.UserListItem, error)
	UpdateUser(ctx context.Context, id string, input *adminDto.UpdateUserInput) (*entity.User, error)
}

type adminService struct {
	repo userRepo.UserRepository
}

func NewAdminService(repo userRepo.UserRepository) AdminService {
	return &adminService{repo: repo}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*adminDto.UserListItem, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*adminDto.UserListItem, 0, len(users))
	for _, u := range users {
		item := &adminDto.UserListItem{
			ID:     u.ID.String(),
			Nama:   u.Nama,
			Email:  u.Email,
			Role:   u.Role,
			Status: u.Status,
		}
		if u.Guru != nil {
			item.NamaLengkap = u.Guru.NamaLengkap
			item.NIP = u.Guru.NIP
			item.FotoURL = u.Guru.FotoURL
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id string, input *adminDto.UpdateUserInput) (*entity.User, error) {
	if input.Role == nil && input.Status == nil {
		return nil, apperror.BadRequest("Tidak ada field yang diubah")
	}
	if input.Role != nil && !entity.ValidRole(*input.Role) {
		return nil, apperror.BadRequest("Role tidak valid")
	}
	if input.Status != nil && *input.Status != entity.StatusAktif && *input.Status != entity.StatusNonaktif {
		return nil, apperror.BadRequest("Status tidak valid")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User tidak ditemukan")
		}
		return nil, err
	}

	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
