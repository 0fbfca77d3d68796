package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"anoa.com/presensisekolah/internal/entity"
	"anoa.com/presensisekolah/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	h.Header.Set("Content-Type", contentType)
	return h
}

func TestValidateFoto(t *testing.T) {
	tests := []struct {
		name    string
		file    *multipart.FileHeader
		wantMsg string
	}{
		{"nil file", nil, "File tidak ditemukan"},
		{"too large", fileHeader("a.png", "image/png", 1<<20+1), "Ukuran file maksimal 1MB"},
		{"pdf", fileHeader("a.pdf", "application/pdf", 100), "Tipe file tidak didukung"},
		{"svg", fileHeader("a.svg", "image/svg+xml", 100), "Tipe file tidak didukung"},
		{"png ok", fileHeader("a.png", "image/png", 1 << 20), ""},
		{"jpeg ok", fileHeader("a.jpg", "image/jpeg", 100), ""},
		{"webp ok", fileHeader("a.webp", "image/webp", 100), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFoto(tt.file)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	url := "https://cdn.example.com/" + folder + "/" + fileName
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeStorage) DeleteImage(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

type fakeGuruRepo struct {
	gurus  map[uuid.UUID]*entity.Guru
	fields map[string]interface{}
}

func (f *fakeGuruRepo) Create(ctx context.Context, user *entity.User, guru *entity.Guru) error {
	return nil
}
func (f *fakeGuruRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeGuruRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeGuruRepo) FindAll(ctx context.Context) ([]*entity.User, error) { return nil, nil }
func (f *fakeGuruRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (f *fakeGuruRepo) Count(ctx context.Context) (int64, error)            { return 0, nil }
func (f *fakeGuruRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	return 0, nil
}

func (f *fakeGuruRepo) FindGuruByUserID(ctx context.Context, userID uuid.UUID) (*entity.Guru, error) {
	g, ok := f.gurus[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (f *fakeGuruRepo) CreateGuru(ctx context.Context, guru *entity.Guru) error {
	f.gurus[guru.UserID] = guru
	return nil
}

func (f *fakeGuruRepo) UpdateGuruFields(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	f.fields = fields
	return nil
}

// An upload for a user without a guru row creates the row lazily, same as a
// profile update would.
func TestUploadFotoCreatesGuruRow(t *testing.T) {
	st := &fakeStorage{}
	repo := &fakeGuruRepo{gurus: map[uuid.UUID]*entity.Guru{}}
	svc := NewUploadService(repo, st)

	userID := uuid.New()
	file, cleanup := realFileHeader(t, "foto.png", "image/png", strings.Repeat("x", 64))
	defer cleanup()

	url, err := svc.UploadFoto(context.Background(), userID, file)
	if err != nil {
		t.Fatalf("UploadFoto: %v", err)
	}

	g, ok := repo.gurus[userID]
	if !ok {
		t.Fatal("guru row was not created")
	}
	if g.FotoURL == nil || *g.FotoURL != url {
		t.Fatalf("foto_url not set, got %+v", g.FotoURL)
	}
}

// A second upload replaces foto_url and deletes the previous file.
func TestUploadFotoReplacesOldPhoto(t *testing.T) {
	st := &fakeStorage{}
	userID := uuid.New()
	old := "https://cdn.example.com/foto-guru/lama.png"
	repo := &fakeGuruRepo{gurus: map[uuid.UUID]*entity.Guru{
		userID: {UserID: userID, FotoURL: &old},
	}}
	svc := NewUploadService(repo, st)

	file, cleanup := realFileHeader(t, "baru.png", "image/png", strings.Repeat("x", 64))
	defer cleanup()

	url, err := svc.UploadFoto(context.Background(), userID, file)
	if err != nil {
		t.Fatalf("UploadFoto: %v", err)
	}

	if got := repo.fields["foto_url"]; got != url {
		t.Errorf("foto_url column = %v, want %q", got, url)
	}
	if len(st.deleted) != 1 || st.deleted[0] != old {
		t.Errorf("old photo not deleted, deleted = %v", st.deleted)
	}
}

// realFileHeader builds a FileHeader whose Open() works, by round-tripping a
// multipart body through the stdlib reader.
func realFileHeader(t *testing.T, name, contentType, content string) (*multipart.FileHeader, func()) {
	t.Helper()

	var buf strings.Builder
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="foto"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	w.Close()

	r := multipart.NewReader(strings.NewReader(buf.String()), w.Boundary())
	form, err := r.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	files := form.File["foto"]
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	return files[0], func() { form.RemoveAll() }
}
