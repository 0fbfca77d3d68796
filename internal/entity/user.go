package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleKepalaSekolah = "kepala_sekolah"
	RoleOperator      = "operator"
	RoleGuru          = "guru"

	StatusAktif    = "aktif"
	StatusNonaktif = "nonaktif"
)

// ValidRole reports whether role is one of the fixed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleKepalaSekolah, RoleOperator, RoleGuru:
		return true
	}
	return false
}

// IsAdminRole reports whether role may touch admin-only profile fields.
func IsAdminRole(role string) bool {
	return role == RoleKepalaSekolah || role == RoleOperator
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nama         string    `gorm:"size:100;not null" json:"nama"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role         string    `gorm:"size:30;not null;default:guru" json:"role"`
	Status       string    `gorm:"size:20;not null;default:aktif" json:"status"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Guru         *Guru     `gorm:"constraint:OnDelete:CASCADE" json:"guru,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Guru holds the personal/employment profile linked 1:1 to a user account.
// All columns are nullable: the row is created empty at registration and
// filled in over time.
type Guru struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	NamaLengkap       *string   `gorm:"size:100" json:"nama_lengkap"`
	NIP               *string   `gorm:"size:50" json:"nip"`
	NoHP              *string   `gorm:"size:30" json:"no_hp"`
	JenisKelamin      *string   `gorm:"size:1" json:"jenis_kelamin"`
	TanggalLahir      *string   `gorm:"size:10" json:"tanggal_lahir"`
	Alamat            *string   `gorm:"type:text" json:"alamat"`
	Mapel             *string   `gorm:"size:100" json:"mapel"`
	StatusKepegawaian *string   `gorm:"size:20" json:"status_kepegawaian"`
	TanggalBergabung  *string   `gorm:"size:10" json:"tanggal_bergabung"`
	FotoURL           *string   `gorm:"type:text" json:"foto_url"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Guru) TableName() string {
	return "guru"
}

func (g *Guru) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
