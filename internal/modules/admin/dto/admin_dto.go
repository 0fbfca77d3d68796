package dto

type UpdateUserInput struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

type UserListItem struct {
	ID          string  `json:"id"`
	Nama        string  `json:"nama"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Status      string  `json:"status"`
	NamaLengkap *string `json:"nama_lengkap,omitempty"`
	NIP         *string `json:"nip,omitempty"`
	FotoURL     *string `json:"foto_url,omitempty"`
}
