package service

import (
	"context"
	"time"

	"anoa.com/presensisekolah/internal/entity"
	presensiRepo "anoa.com/presensisekolah/internal/modules/presensi/repository"
	statDto "anoa.com/presensisekolah/internal/modules/stat/dto"
	userRepo "anoa.com/presensisekolah/internal/modules/user/repository"
)

type StatService interface {
	GetDashboard(ctx context.Context) (*statDto.DashboardResponse, error)
}

type statService struct {
	userRepo     userRepo.UserRepository
	presensiRepo presensiRepo.PresensiRepository
	now          func() time.Time
}

func NewStatService(userRepo userRepo.UserRepository, presensiRepo presensiRepo.PresensiRepository) StatService {
	return &statService{
		userRepo:     userRepo,
		presensiRepo: presensiRepo,
		now:          time.Now,
	}
}

// GetDashboard buckets "hari ini" by the UTC date, the same bucket the scan
// endpoint writes into.
func (s *statService) GetDashboard(ctx context.Context) (*statDto.DashboardResponse, error) {
	today := s.now().UTC().Format("2006-01-02")

	totalGuru, err := s.userRepo.CountByRole(ctx, entity.RoleGuru)
	if err != nil {
		return nil, err
	}

	hadir, err := s.presensiRepo.CountByDateAndStatus(ctx, today, entity.PresensiHadir)
	if err != nil {
		return nil, err
	}

	terlambat, err := s.presensiRepo.CountByDateAndStatus(ctx, today, entity.PresensiTerlambat)
	if err != nil {
		return nil, err
	}

	belum := totalGuru - hadir - terlambat
	if belum < 0 {
		belum = 0
	}

	return &statDto.DashboardResponse{
		TotalGuru:        totalGuru,
		HadirHariIni:     hadir,
		TerlambatHariIni: terlambat,
		BelumPresensi:    belum,
	}, nil
}
