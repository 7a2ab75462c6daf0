package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/authz"
	apphttp "github.com/jhoicas/company-service/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "company-a"
	companyB = "company-b"
)

// fakeGateway resuelve tokens fijos. "down" simula el proveedor caído y "slow" uno que no
// responde antes del timeout.
type fakeGateway struct {
	identities map[string]*authz.Identity
	calls      int
}

func (g *fakeGateway) Resolve(ctx context.Context, credential string) (*authz.Identity, error) {
	g.calls++
	switch credential {
	case "down":
		return nil, fmt.Errorf("%w: proveedor caído", domain.ErrServiceUnavailable)
	case "slow":
		<-ctx.Done()
		return nil, ctx.Err()
	}
	id, ok := g.identities[credential]
	if !ok {
		return nil, fmt.Errorf("%w: token desconocido", domain.ErrUnauthorized)
	}
	return id, nil
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{identities: map[string]*authz.Identity{
		"owner-a": {UserID: "u-owner-a", CompanyID: companyA, IsOwner: true},
		"owner-b": {UserID: "u-owner-b", CompanyID: companyB, IsOwner: true},
		"reader-a": {
			UserID:      "u-reader-a",
			CompanyID:   companyA,
			Permissions: authz.NewPermissionSet(authz.Permission{Action: authz.ActionRead, Resource: authz.ResourceBranches}),
		},
		"nobody-a": {UserID: "u-nobody-a", CompanyID: companyA},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para resolver la identidad
//   - RequirePermission para autorizar (read, branches)
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(gw *fakeGateway) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(gw, 50*time.Millisecond),
		apphttp.RequirePermission(authz.ActionRead, authz.ResourceBranches),
		func(c *fiber.Ctx) error {
			scope, err := apphttp.GetScope(c)
			if err != nil {
				return err
			}
			return c.JSON(fiber.Map{"company_id": scope.CompanyID(), "user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_401(t *testing.T) {
	gw := newFakeGateway()
	resp := doRequest(t, buildTestApp(gw), "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeError(t, resp)["code"])
	assert.Zero(t, gw.calls, "sin credencial no se consulta al proveedor")
}

func TestAuthMiddleware_FormatoInvalido_401(t *testing.T) {
	resp := doRequest(t, buildTestApp(newFakeGateway()), "Token owner-a")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp)["code"])
}

func TestAuthMiddleware_TokenRechazado_401(t *testing.T) {
	resp := doRequest(t, buildTestApp(newFakeGateway()), "Bearer desconocido")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp)["code"])
}

func TestAuthMiddleware_ProveedorCaido_503(t *testing.T) {
	resp := doRequest(t, buildTestApp(newFakeGateway()), "Bearer down")

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "IDENTITY_UNAVAILABLE", decodeError(t, resp)["code"])
}

func TestAuthMiddleware_ProveedorLento_503(t *testing.T) {
	resp := doRequest(t, buildTestApp(newFakeGateway()), "Bearer slow")

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestAuthMiddleware_ResuelveEnCadaRequest(t *testing.T) {
	gw := newFakeGateway()
	app := buildTestApp(gw)
	for i := 0; i < 3; i++ {
		resp := doRequest(t, app, "Bearer reader-a")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 3, gw.calls, "la identidad no se cachea")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermiso_200(t *testing.T) {
	resp := doRequest(t, buildTestApp(newFakeGateway()), "Bearer reader-a")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, companyA, body["company_id"])
	assert.Equal(t, "u-reader-a", body["user_id"])
}

func TestRequirePermission_SinPermiso_403(t *testing.T) {
	resp := doRequest(t, buildTestApp(newFakeGateway()), "Bearer nobody-a")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp)["code"])
}

func TestRequirePermission_DuenoSiemprePasa(t *testing.T) {
	resp := doRequest(t, buildTestApp(newFakeGateway()), "Bearer owner-b")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePermission_SinAuthMiddleware_401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequirePermission(authz.ActionRead, authz.ResourceBranches), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
