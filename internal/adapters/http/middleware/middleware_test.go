package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"donation-desk/internal/core/domain"
	"donation-desk/internal/core/services"
	"donation-desk/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stubGate accepts a single token
type stubGate struct {
	valid string
	err   error
}

func (g stubGate) Authenticate(ctx context.Context, email, password string) (*services.Session, error) {
	return nil, domain.ErrInvalidCredentials
}

func (g stubGate) Verify(ctx context.Context, token string) (*jwt.Claims, error) {
	if g.err != nil {
		return nil, g.err
	}
	if token != g.valid {
		return nil, domain.ErrTokenInvalid
	}
	return &jwt.Claims{Email: "admin@example.com", Role: "admin"}, nil
}

func (g stubGate) Revoke(ctx context.Context, token string) {}

func newProtectedApp(gate services.SessionGate) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/protected", AdminAuth(gate, "adminToken"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalEmail).(string))
	})
	return app
}

func TestAdminAuth(t *testing.T) {
	app := newProtectedApp(stubGate{valid: "good"})

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{name: "no token", setup: func(r *http.Request) {}, status: http.StatusUnauthorized},
		{name: "cookie", setup: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "adminToken", Value: "good"})
		}, status: http.StatusOK},
		{name: "bearer", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer good")
		}, status: http.StatusOK},
		{name: "bad cookie", setup: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "adminToken", Value: "bad"})
		}, status: http.StatusUnauthorized},
		{name: "basic auth header", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Basic good")
		}, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setup(req)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAdminAuth_BackendFailureIs500(t *testing.T) {
	app := newProtectedApp(stubGate{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer anything")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "redis")
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, int64(500), entries[1].ContextMap()["status"])
}

func TestRequestLogger_FieldsSurviveLaterRequests(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, path := range []string{"/donations-first", "/zzz"} {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/donations-first", entries[0].ContextMap()["path"])
	assert.Equal(t, "GET", entries[0].ContextMap()["method"])
	assert.Equal(t, "/zzz", entries[1].ContextMap()["path"])
}
