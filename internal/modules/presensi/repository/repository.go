package repository

import (
	"context"

	"anoa.com/presensisekolah/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PresensiRepository interface {
	// Create relies on the (user_id, tanggal) unique index: a concurrent
	// duplicate insert surfaces as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, presensi *entity.Presensi) error
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, tanggal string) (*entity.Presensi, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Presensi, error)
	CountByDateAndStatus(ctx context.Context, tanggal, status string) (int64, error)
}

type presensiRepository struct {
	db *gorm.DB
}

func NewPresensiRepository(db *gorm.DB) PresensiRepository {
	return &presensiRepository{db: db}
}

func (r *presensiRepository) Create(ctx context.Context, presensi *entity.Presensi) error {
	return r.db.WithContext(ctx).Create(presensi).Error
}

func (r *presensiRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, tanggal string) (*entity.Presensi, error) {
	var presensi entity.Presensi
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tanggal = ?", userID, tanggal).
		First(&presensi).Error; err != nil {
		return nil, err
	}

	return &presensi, nil
}

func (r *presensiRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Presensi, error) {
	var records []*entity.Presensi
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("tanggal DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *presensiRepository) CountByDateAndStatus(ctx context.Context, tanggal, status string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Presensi{}).
		Where("tanggal = ? AND status = ?", tanggal, status).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
