package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"anoa.com/presensisekolah/internal/entity"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	return db, mock
}

func TestCreateTranslatesUniqueViolationToDuplicatedKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPresensiRepository(db)

	// The composite unique index rejecting a concurrent duplicate comes back
	// from postgres as SQLSTATE 23505.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "presensi"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_presensi_user_tanggal"})

	err := repo.Create(context.Background(), &entity.Presensi{
		UserID:        uuid.New(),
		Tanggal:       "2026-08-30",
		Status:        entity.PresensiHadir,
		WaktuPresensi: time.Now(),
	})

	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByUserAndDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPresensiRepository(db)

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "tanggal", "status", "waktu_presensi", "keterangan", "created_at"}).
		AddRow(uuid.New(), userID, "2026-08-30", entity.PresensiHadir, time.Now(), "Scan oleh user x", time.Now())

	mock.ExpectQuery(`SELECT \* FROM "presensi" WHERE user_id = .+ AND tanggal = .+`).
		WithArgs(userID, "2026-08-30", 1).
		WillReturnRows(rows)

	rec, err := repo.FindByUserAndDate(context.Background(), userID, "2026-08-30")
	if err != nil {
		t.Fatalf("FindByUserAndDate: %v", err)
	}
	if rec.Tanggal != "2026-08-30" || rec.Status != entity.PresensiHadir {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByUserAndDateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPresensiRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "presensi"`).
		WithArgs(userID, "2026-08-30", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUserAndDate(context.Background(), userID, "2026-08-30")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}
