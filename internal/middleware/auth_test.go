package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetakip/projetakip-backend/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthTestApp() (*fiber.App, *models.Actor, *string) {
	var gotActor models.Actor
	var gotKey string

	app := fiber.New()
	app.Get("/protected", RequireActor(testSecret), func(c *fiber.Ctx) error {
		gotActor = ActorFrom(c)
		gotKey = SessionKeyFrom(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &gotActor, &gotKey
}

func TestRequireActor_ValidToken(t *testing.T) {
	app, gotActor, gotKey := newAuthTestApp()
	token := signToken(t, jwt.MapClaims{
		"sub":  "STU00001",
		"name": "Can Demir",
		"role": "student",
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "STU00001", gotActor.ID)
	assert.Equal(t, models.RoleStudent, gotActor.Role)
	assert.Equal(t, "user:Can Demir", *gotKey)
}

func TestRequireActor_MissingToken(t *testing.T) {
	app, _, _ := newAuthTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireActor_WrongSecret(t *testing.T) {
	app, _, _ := newAuthTestApp()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "X", "role": "student"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireActor_UnknownRole(t *testing.T) {
	app, _, _ := newAuthTestApp()
	token := signToken(t, jwt.MapClaims{"sub": "X", "role": "janitor"})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireActor_NamelessActorFallsBackToAddress(t *testing.T) {
	app, _, gotKey := newAuthTestApp()
	token := signToken(t, jwt.MapClaims{"sub": "ADM00001", "role": "admin"})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, *gotKey, "addr:")
}
