package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/genekit/inventory-api/internal/application/auth"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/pkg/logger"
)

// AuthHandler maneja autenticación y gestión de la propia cuenta.
type AuthHandler struct {
	uc  *auth.UseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ConfirmInvite godoc
// @Summary      Canjear invitación y fijar contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmInviteRequest  true  "token de activación, password y confirm_password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/confirm [post]
func (h *AuthHandler) ConfirmInvite(c *fiber.Ctx) error {
	var in dto.ConfirmInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.uc.ConfirmInvite(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdatePassword godoc
// @Summary      Cambiar contraseña del actor autenticado
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePasswordRequest  true  "password y confirm_password (mínimo 6 caracteres)"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/update-password [post]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	var in dto.UpdatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	if err := h.uc.UpdatePassword(c.Context(), rc, in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Contraseña actualizada correctamente"})
}

// Me godoc
// @Summary      Perfil del actor autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	out, err := h.uc.Me(c.Context(), rc)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
