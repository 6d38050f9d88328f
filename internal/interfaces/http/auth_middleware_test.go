package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	httpiface "github.com/jhoicas/Contable-api/internal/interfaces/http"
	"github.com/jhoicas/Contable-api/pkg/jwt"
)

const testSecret = "secret-de-prueba"

// newProtectedApp arma una app mínima con el middleware de auth y una ruta que
// refleja los locals extraídos del token.
func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", httpiface.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": httpiface.GetUserID(c),
			"role":    httpiface.GetRole(c),
		})
	})
	app.Get("/admin", httpiface.AuthMiddleware(testSecret), httpiface.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthMiddleware_SinHeader_401(t *testing.T) {
	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/protected", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido_401(t *testing.T) {
	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_401(t *testing.T) {
	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer token-falso")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaDeOtroSecret_401(t *testing.T) {
	token, err := jwt.Generate("otro-secret", "user-1", entity.RoleAdmin, "contable-api", 60)
	require.NoError(t, err)

	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido_ExtraeClaims(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", entity.RoleContador, "contable-api", 60)
	require.NoError(t, err)

	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolPermitido_Pasa(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", entity.RoleAdmin, "contable-api", 60)
	require.NoError(t, err)

	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolSinPermiso_403(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", entity.RoleContador, "contable-api", 60)
	require.NoError(t, err)

	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_SinRol_401(t *testing.T) {
	// Token firmado con rol vacío: autenticado pero sin autorización posible.
	token, err := jwt.Generate(testSecret, "user-1", "", "contable-api", 60)
	require.NoError(t, err)

	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
