package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/presensisekolah/internal/entity"
	"anoa.com/presensisekolah/internal/modules/user/dto"
	"anoa.com/presensisekolah/internal/modules/user/repository"
	"anoa.com/presensisekolah/internal/token"
	"anoa.com/presensisekolah/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	SendVerification(ctx context.Context, userID string) error
}

type authService struct {
	repo   repository.UserRepository
	issuer *token.Issuer
}

func NewAuthService(repo repository.UserRepository, issuer *token.Issuer) AuthService {
	return &authService{
		repo:   repo,
		issuer: issuer,
	}
}

// isValidEmail is deliberately permissive: the real check is owning the inbox,
// not matching the RFC grammar.
func isValidEmail(v string) bool {
	return strings.Contains(v, "@") && strings.Contains(v, ".")
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if input.NamaLengkap == "" || input.Email == "" || input.Password == "" {
		return nil, apperror.BadRequest("Nama, email, dan password wajib diisi")
	}
	if !isValidEmail(input.Email) {
		return nil, apperror.BadRequest("Format email tidak valid")
	}
	if len(input.Password) < 6 {
		return nil, apperror.BadRequest("Password minimal 6 karakter")
	}

	role := input.Role
	if role == "" {
		role = entity.RoleGuru
	}
	if !entity.ValidRole(role) {
		return nil, apperror.BadRequest("Role tidak valid")
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Conflict("Email sudah terdaftar")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Nama:         input.NamaLengkap,
		Email:        input.Email,
		Role:         role,
		Status:       entity.StatusAktif,
		PasswordHash: string(hashed),
	}

	// The empty guru row is created together with the account so the profile
	// endpoints always have a row to merge into.
	if err := s.repo.Create(ctx, user, &entity.Guru{}); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperror.BadRequest("Email dan password wajib diisi")
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password: never reveal which field failed.
			return nil, apperror.Unauthorized("Email atau password salah")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Unauthorized("Email atau password salah")
	}

	// Checked only after the credentials match, so this cannot be used to
	// enumerate disabled accounts by password guessing.
	if user.Status != entity.StatusAktif {
		return nil, apperror.Forbidden("Akun tidak aktif")
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("Refresh token tidak valid")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Refresh token tidak valid")
		}
		return nil, err
	}

	if user.Status != entity.StatusAktif {
		return nil, apperror.Forbidden("Akun tidak aktif")
	}

	return s.buildAuthResponse(user)
}

// SendVerification is a stub: no mail is sent. The endpoint exists so the
// client flow works end to end.
func (s *authService) SendVerification(ctx context.Context, userID string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("User tidak ditemukan")
		}
		return err
	}
	return nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	accessToken, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.issuer.IssueRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
