package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genekit/inventory-api/internal/domain/entity"
	apphttp "github.com/genekit/inventory-api/internal/interfaces/http"
	pkgjwt "github.com/genekit/inventory-api/pkg/jwt"
	"github.com/genekit/inventory-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testOrgID     = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "genekit-inventory-test"
	testExpMin    = 60
)

// fakeProfileRepo resuelve perfiles desde un mapa fijo (o falla a demanda).
type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
	err      error
}

func (f *fakeProfileRepo) Create(*entity.Profile) error { return nil }
func (f *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[id], nil
}
func (f *fakeProfileRepo) GetByEmail(string) (*entity.Profile, error) { return nil, nil }
func (f *fakeProfileRepo) GetByInviteToken(string) (*entity.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) Upsert(*entity.Profile) error               { return nil }
func (f *fakeProfileRepo) UpdatePassword(string, string) error        { return nil }
func (f *fakeProfileRepo) ListByOrg(string) ([]*entity.Profile, error) {
	return nil, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testOrgID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "/protected", tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

// Caso 1b: El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_ManagerAccedeRutaAdminOManager(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleManager)
	resp := doRequest(t, app, "/protected", tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"manager debe poder acceder a ruta que permite admin o manager")
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_ViewerBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "/protected", tokenForRole(t, entity.RoleViewer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"viewer no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: Token con rol vacío (token legacy) → HTTP 403 por el RBAC.
func TestRequireRole_TokenSinRol_Retorna403(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testOrgID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 4: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "/protected", "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "no autenticado")
}

// Caso 5: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequestContextMiddleware — resolución del contexto de petición
// ──────────────────────────────────────────────────────────────────────────────

func buildContextApp(repo *fakeProfileRepo, multiCountryEmail string) *fiber.App {
	app := fiber.New()
	app.Get("/ctx",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequestContextMiddleware(repo, multiCountryEmail, logger.Nop()),
		func(c *fiber.Ctx) error {
			rc := apphttp.GetRequestContext(c)
			return c.JSON(fiber.Map{
				"organization_id": rc.OrganizationID,
				"country_code":    rc.CountryCode,
				"multi_country":   rc.MultiCountry,
			})
		},
	)
	return app
}

func activeProfile() *entity.Profile {
	return &entity.Profile{
		ID:             testUserID,
		Email:          "operador@example.com",
		OrganizationID: testOrgID,
		Role:           entity.RoleManager,
		CountryCode:    "UY",
		Status:         entity.ProfileStatusActive,
	}
}

func TestRequestContext_ResuelveTenantYPais(t *testing.T) {
	repo := &fakeProfileRepo{profiles: map[string]*entity.Profile{testUserID: activeProfile()}}
	app := buildContextApp(repo, "")

	resp := doRequest(t, app, "/ctx", tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testOrgID, body["organization_id"])
	assert.Equal(t, "UY", body["country_code"])
	assert.Equal(t, false, body["multi_country"])
}

// Perfil sin país configurado → se asume MX.
func TestRequestContext_PaisPorDefecto(t *testing.T) {
	p := activeProfile()
	p.CountryCode = ""
	repo := &fakeProfileRepo{profiles: map[string]*entity.Profile{testUserID: p}}
	app := buildContextApp(repo, "")

	resp := doRequest(t, app, "/ctx", tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MX", body["country_code"])
}

// La cuenta configurada como multi-país obtiene visibilidad cross-country.
func TestRequestContext_CuentaMultiPais(t *testing.T) {
	repo := &fakeProfileRepo{profiles: map[string]*entity.Profile{testUserID: activeProfile()}}
	app := buildContextApp(repo, "operador@example.com")

	resp := doRequest(t, app, "/ctx", tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["multi_country"])
}

// Perfil inexistente → 500 con el mensaje de contexto de usuario, no 404.
func TestRequestContext_PerfilInexistente_Retorna500(t *testing.T) {
	repo := &fakeProfileRepo{profiles: map[string]*entity.Profile{}}
	app := buildContextApp(repo, "")

	resp := doRequest(t, app, "/ctx", tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "error al obtener información del usuario")
}

func TestRequestContext_ErrorDeRepositorio_Retorna500(t *testing.T) {
	repo := &fakeProfileRepo{err: errors.New("db caída")}
	app := buildContextApp(repo, "")

	resp := doRequest(t, app, "/ctx", tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// El detalle interno no se filtra al caller.
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "db caída")
}
