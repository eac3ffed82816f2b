package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/architdhariwal/sms-backend/pkg/util"
)

func newProtectedApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		},
	})
	mw := NewAuthMiddleware(tm, nil)
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		sub, ok := SubjectFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(sub)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tm := newTestManager(t, clock)
	tok, err := tm.Issue("ADM-7")
	if err != nil {
		t.Fatal(err)
	}
	app := newProtectedApp(t, tm)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + tok.Token, http.StatusOK},
		{"lowercase scheme", "bearer " + tok.Token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", tok.Token, http.StatusUnauthorized},
		{"basic", "Basic Zm9vOmJhcg==", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestAuthMiddlewareExpired(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tm := newTestManager(t, clock)
	tok, err := tm.Issue("ADM-7")
	if err != nil {
		t.Fatal(err)
	}
	clock.t = clock.t.Add(2 * time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	resp, err := newProtectedApp(t, tm).Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
