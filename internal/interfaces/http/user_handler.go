package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/genekit/inventory-api/internal/application/auth"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/pkg/logger"
)

// UserHandler gestión de usuarios de la organización (protegido).
type UserHandler struct {
	uc  *auth.UseCase
	log *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.UseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// Invite godoc
// @Summary      Invitar un usuario a la organización
// @Description  Solo administradores. El invitado hereda organización y país del invitador.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteUserRequest  true  "email y rol (ADMIN|MANAGER|VIEWER)"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/invite [post]
func (h *UserHandler) Invite(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	var in dto.InviteUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	user, err := h.uc.Invite(c.Context(), rc, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Success: true,
		Data:    user,
		Message: "Invitación enviada correctamente",
	})
}

// List godoc
// @Summary      Listar usuarios de la organización
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	users, err := h.uc.ListUsers(c.Context(), rc)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(users), "users": users})
}
