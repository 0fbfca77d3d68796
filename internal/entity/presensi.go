package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PresensiHadir     = "HADIR"
	PresensiTerlambat = "TERLAMBAT"
)

// Presensi is one attendance record. The composite unique index on
// (user_id, tanggal) is what guarantees at most one record per person per
// calendar day, even when two scans race past the read check.
type Presensi struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_presensi_user_tanggal" json:"user_id"`
	Tanggal       string    `gorm:"size:10;not null;uniqueIndex:idx_presensi_user_tanggal" json:"tanggal"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	WaktuPresensi time.Time `gorm:"not null" json:"waktu_presensi"`
	Keterangan    string    `gorm:"type:text" json:"keterangan"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Presensi) TableName() string {
	return "presensi"
}

func (p *Presensi) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
