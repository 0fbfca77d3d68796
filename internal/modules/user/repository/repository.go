package repository

import (
	"context"

	"anoa.com/presensisekolah/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User, guru *entity.Guru) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)

	FindGuruByUserID(ctx context.Context, userID uuid.UUID) (*entity.Guru, error)
	CreateGuru(ctx context.Context, guru *entity.Guru) error
	// UpdateGuruFields applies a column map to the guru row of userID. A nil
	// value in the map clears the stored column.
	UpdateGuruFields(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User, guru *entity.Guru) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if guru != nil {
			guru.UserID = user.ID
			if err := tx.Create(guru).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Guru").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Guru").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.db.WithContext(ctx).
		Preload("Guru").
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("role = ?", role).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) FindGuruByUserID(ctx context.Context, userID uuid.UUID) (*entity.Guru, error) {
	var guru entity.Guru
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&guru).Error; err != nil {
		return nil, err
	}

	return &guru, nil
}

func (r *userRepository) CreateGuru(ctx context.Context, guru *entity.Guru) error {
	return r.db.WithContext(ctx).Create(guru).Error
}

func (r *userRepository) UpdateGuruFields(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&entity.Guru{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}
