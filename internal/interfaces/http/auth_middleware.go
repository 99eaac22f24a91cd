package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/genekit/inventory-api/internal/application/appctx"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/domain/repository"
	"github.com/genekit/inventory-api/pkg/jwt"
	"github.com/genekit/inventory-api/pkg/logger"
)

// Locals keys en Fiber.
const (
	LocalUserID         = "user_id"
	LocalRole           = "role"
	LocalRequestContext = "request_context"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a c.Locals.
// Toda petición sin token válido se rechaza con "no autenticado" antes de tocar datos.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "no autenticado"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "no autenticado"})
		}
		userID, _, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequestContextMiddleware resuelve el RequestContext una sola vez por petición:
// carga el perfil del actor y deja en locals tenant, rol y país ya resueltos.
// Los casos de uso reciben este objeto y no repiten lookups.
func RequestContextMiddleware(profileRepo repository.ProfileRepository, multiCountryEmail string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "no autenticado"})
		}
		profile, err := profileRepo.GetByID(userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("resolución de contexto de usuario")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "USER_CONTEXT", Error: "error al obtener información del usuario"})
		}
		if profile == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "USER_CONTEXT", Error: "error al obtener información del usuario"})
		}
		countryCode := profile.CountryCode
		if countryCode == "" {
			countryCode = "MX"
		}
		rc := appctx.RequestContext{
			ActorID:        profile.ID,
			Email:          profile.Email,
			OrganizationID: profile.OrganizationID,
			Role:           profile.Role,
			CountryCode:    countryCode,
			MultiCountry:   multiCountryEmail != "" && profile.Email == multiCountryEmail,
		}
		c.Locals(LocalRequestContext, rc)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados (después de AuthMiddleware).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Error: "acceso denegado"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRequestContext devuelve el RequestContext resuelto por el middleware.
func GetRequestContext(c *fiber.Ctx) appctx.RequestContext {
	v := c.Locals(LocalRequestContext)
	if v == nil {
		return appctx.RequestContext{}
	}
	rc, _ := v.(appctx.RequestContext)
	return rc
}
