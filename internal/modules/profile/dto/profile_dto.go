package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"anoa.com/presensisekolah/internal/entity"
	"github.com/google/uuid"
)

// Profile columns accepted in an update request. Anything else in the body is
// ignored.
var KnownColumns = []string{
	"nama_lengkap",
	"nip",
	"no_hp",
	"jenis_kelamin",
	"tanggal_lahir",
	"alamat",
	"mapel",
	"status_kepegawaian",
	"tanggal_bergabung",
	"foto_url",
}

// UpdateProfileInput distinguishes a key that is absent (leave the stored
// value alone) from one that is present with null (clear the stored value).
// Fields maps column name to the submitted value; a nil entry is an explicit
// null.
type UpdateProfileInput struct {
	Fields  map[string]*string
	Role    *string
	RoleSet bool
}

// ParseUpdateProfileInput decodes a raw JSON body keeping key presence.
func ParseUpdateProfileInput(body []byte) (*UpdateProfileInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("body harus berupa objek JSON")
	}

	input := &UpdateProfileInput{Fields: make(map[string]*string)}

	for _, col := range KnownColumns {
		val, ok := raw[col]
		if !ok {
			continue
		}
		s, err := decodeNullableString(col, val)
		if err != nil {
			return nil, err
		}
		input.Fields[col] = s
	}

	if val, ok := raw["role"]; ok {
		input.RoleSet = true
		s, err := decodeNullableString("role", val)
		if err != nil {
			return nil, err
		}
		input.Role = s
	}

	return input, nil
}

func decodeNullableString(key string, raw json.RawMessage) (*string, error) {
	if string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%s harus berupa teks", key)
	}
	return &s, nil
}

// ProfileResponse is the joined user+guru view returned after every read or
// write: the stored state, never the client's optimistic one.
type ProfileResponse struct {
	UserID            uuid.UUID  `json:"user_id"`
	Email             string     `json:"email"`
	NamaUser          string     `json:"nama_user"`
	Role              string     `json:"role"`
	ID                *uuid.UUID `json:"id"`
	NamaLengkap       *string    `json:"nama_lengkap"`
	NIP               *string    `json:"nip"`
	NoHP              *string    `json:"no_hp"`
	JenisKelamin      *string    `json:"jenis_kelamin"`
	TanggalLahir      *string    `json:"tanggal_lahir"`
	Alamat            *string    `json:"alamat"`
	Mapel             *string    `json:"mapel"`
	StatusKepegawaian *string    `json:"status_kepegawaian"`
	TanggalBergabung  *string    `json:"tanggal_bergabung"`
	FotoURL           *string    `json:"foto_url"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// NewProfileResponse joins identity fields with the guru row (which may still
// be missing for a fresh account).
func NewProfileResponse(user *entity.User) *ProfileResponse {
	resp := &ProfileResponse{
		UserID:   user.ID,
		Email:    user.Email,
		NamaUser: user.Nama,
		Role:     user.Role,
	}

	if g := user.Guru; g != nil {
		resp.ID = &g.ID
		resp.NamaLengkap = g.NamaLengkap
		resp.NIP = g.NIP
		resp.NoHP = g.NoHP
		resp.JenisKelamin = g.JenisKelamin
		resp.TanggalLahir = g.TanggalLahir
		resp.Alamat = g.Alamat
		resp.Mapel = g.Mapel
		resp.StatusKepegawaian = g.StatusKepegawaian
		resp.TanggalBergabung = g.TanggalBergabung
		resp.FotoURL = g.FotoURL
		resp.CreatedAt = &g.CreatedAt
		resp.UpdatedAt = &g.UpdatedAt
	}

	return resp
}
