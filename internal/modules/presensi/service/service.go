package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"anoa.com/presensisekolah/internal/entity"
	"anoa.com/presensisekolah/internal/modules/presensi/dto"
	"anoa.com/presensisekolah/internal/modules/presensi/repository"
	"anoa.com/presensisekolah/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	// Scans after this hour of the morning count as late. Exactly 08:00:00 is
	// still on time; 08:00:01 is not.
	cutoffHour = 8

	claimType = "presensi"

	scanLockTTL = 10 * time.Second
)

type PresensiService interface {
	Scan(ctx context.Context, scannerID uuid.UUID, input dto.ScanInput) (*dto.ScanResponse, error)
	History(ctx context.Context, requesterID uuid.UUID, requesterRole string, targetID uuid.UUID) ([]*entity.Presensi, error)
}

type presensiService struct {
	repo repository.PresensiRepository
	rdb  *redis.Client
}

// NewPresensiService creates the attendance recorder. rdb may be nil: the
// redis lock only narrows the race window, the database unique index is the
// actual idempotency guarantee.
func NewPresensiService(repo repository.PresensiRepository, rdb *redis.Client) PresensiService {
	return &presensiService{
		repo: repo,
		rdb:  rdb,
	}
}

func (s *presensiService) Scan(ctx context.Context, scannerID uuid.UUID, input dto.ScanInput) (*dto.ScanResponse, error) {
	if input.QRData == nil || input.QRData.UserID == "" || input.QRData.Type != claimType {
		return nil, apperror.BadRequest("QR Code tidak valid")
	}

	targetID, err := uuid.Parse(input.QRData.UserID)
	if err != nil {
		return nil, apperror.BadRequest("QR Code tidak valid")
	}

	// The client-reported scan time is authoritative, for the calendar-day
	// bucket and for the lateness cutoff alike.
	scanTime, err := time.Parse(time.RFC3339, input.ScanTime)
	if err != nil {
		return nil, apperror.BadRequest("Waktu scan tidak valid")
	}

	tanggal := scanTime.UTC().Format("2006-01-02")

	if !s.acquireScanLock(ctx, targetID, tanggal) {
		return nil, apperror.BadRequest("Sudah melakukan presensi hari ini")
	}

	if _, err := s.repo.FindByUserAndDate(ctx, targetID, tanggal); err == nil {
		return nil, apperror.BadRequest("Sudah melakukan presensi hari ini")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Classified on the timestamp's own offset, i.e. the scanner's local clock.
	status := entity.PresensiHadir
	if isLate(scanTime) {
		status = entity.PresensiTerlambat
	}

	record := &entity.Presensi{
		UserID:        targetID,
		Tanggal:       tanggal,
		Status:        status,
		WaktuPresensi: scanTime,
		Keterangan:    fmt.Sprintf("Scan oleh user %s", scannerID),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		// A concurrent scan won the race past the read check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest("Sudah melakukan presensi hari ini")
		}
		return nil, err
	}

	return &dto.ScanResponse{
		Status: status,
		Waktu:  scanTime.Format("2/1/2006, 15.04.05"),
	}, nil
}

func (s *presensiService) History(ctx context.Context, requesterID uuid.UUID, requesterRole string, targetID uuid.UUID) ([]*entity.Presensi, error) {
	if requesterID != targetID && !entity.IsAdminRole(requesterRole) {
		return nil, apperror.Forbidden("Tidak berhak melihat presensi user lain")
	}

	return s.repo.FindAllByUser(ctx, targetID)
}

func isLate(t time.Time) bool {
	cutoff := time.Date(t.Year(), t.Month(), t.Day(), cutoffHour, 0, 0, 0, t.Location())
	return t.After(cutoff)
}

// acquireScanLock serializes the check-then-insert for one subject and day.
// Redis being down degrades to the database index alone.
func (s *presensiService) acquireScanLock(ctx context.Context, userID uuid.UUID, tanggal string) bool {
	if s.rdb == nil {
		return true
	}

	key := fmt.Sprintf("presensi:lock:%s:%s", userID, tanggal)
	wasSet, err := s.rdb.SetNX(ctx, key, "locked", scanLockTTL).Result()
	if err != nil {
		log.Printf("presensi scan lock unavailable: %v", err)
		return true
	}

	return wasSet
}
