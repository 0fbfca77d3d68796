package token

import (
	"fmt"
	"time"

	"anoa.com/presensisekolah/internal/config"
	"anoa.com/presensisekolah/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload carried by an access token: the identity
// snapshot taken at issue time.
type AccessClaims struct {
	Email string `json:"email"`
	Nama  string `json:"nama"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies the two token classes. Access and refresh tokens
// are signed with distinct secrets, so one class never validates as the other.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(cfg *config.Config) *Issuer {
	return &Issuer{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// IssueAccessToken signs a short-lived token carrying the user's identity
// snapshot (id, email, nama, role).
func (i *Issuer) IssueAccessToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Email: user.Email,
		Nama:  user.Nama,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.accessSecret)
}

// IssueRefreshToken signs a long-lived token carrying only the user id.
func (i *Issuer) IssueRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.refreshSecret)
}

// VerifyAccessToken validates signature and expiry against the access secret
// and returns the identity snapshot baked into the token.
func (i *Issuer) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.accessSecret, nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	return claims, nil
}

// VerifyRefreshToken validates a refresh token and returns the subject user id.
func (i *Issuer) VerifyRefreshToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.refreshSecret, nil
	})
	if err != nil || !tok.Valid {
		return "", fmt.Errorf("invalid or expired refresh token")
	}

	return claims.Subject, nil
}
