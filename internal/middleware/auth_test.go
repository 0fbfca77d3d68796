package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/presensisekolah/internal/config"
	"anoa.com/presensisekolah/internal/entity"
	"anoa.com/presensisekolah/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestRouter(t *testing.T, role string) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := token.NewIssuer(&config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	})

	tok, err := issuer.IssueAccessToken(&entity.User{
		ID:    uuid.New(),
		Nama:  "Siti Aminah",
		Email: "siti@sekolah.sch.id",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	m := NewAuthMiddleware(issuer)
	router := gin.New()
	router.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("user_role"),
		})
	})
	router.GET("/admin", m.RequireAuth(), m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, tok
}

func TestRequireAuthMissingToken(t *testing.T) {
	router, _ := newTestRouter(t, entity.RoleGuru)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthMalformedToken(t *testing.T) {
	router, _ := newTestRouter(t, entity.RoleGuru)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthRejectsQueryParamTransport(t *testing.T) {
	router, tok := newTestRouter(t, entity.RoleGuru)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+tok, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("token via query param must be rejected, got %d", w.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	router, tok := newTestRouter(t, entity.RoleGuru)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		role string
		want int
	}{
		{entity.RoleGuru, http.StatusForbidden},
		{entity.RoleOperator, http.StatusOK},
		{entity.RoleKepalaSekolah, http.StatusOK},
	}

	for _, tc := range cases {
		router, tok := newTestRouter(t, tc.role)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		router.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, w.Code)
		}
	}
}
