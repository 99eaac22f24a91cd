package dto

import (
	"time"

	"github.com/genekit/inventory-api/internal/domain/entity"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token más el usuario autenticado.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserResponse `json:"user"`
}

// ConfirmInviteRequest body para POST /api/auth/confirm (público).
// El token llega en el enlace de activación del correo de invitación.
type ConfirmInviteRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdatePasswordRequest body para POST /api/auth/update-password.
type UpdatePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// InviteUserRequest body para POST /api/users/invite. Solo administradores.
type InviteUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"` // ADMIN | MANAGER | VIEWER
}

// MeResponse identidad del actor autenticado con su organización resuelta.
type MeResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name,omitempty"`
	Role             string `json:"role"`
	CountryCode      string `json:"country_code"`
	MultiCountry     bool   `json:"multi_country"`
}

// UserResponse representación JSON de un perfil (nunca expone el hash).
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	OrganizationID string    `json:"organization_id"`
	Role           string    `json:"role"`
	CountryCode    string    `json:"country_code"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToUserResponse convierte la entidad al DTO de respuesta.
func ToUserResponse(p *entity.Profile) *UserResponse {
	if p == nil {
		return nil
	}
	return &UserResponse{
		ID:             p.ID,
		Email:          p.Email,
		OrganizationID: p.OrganizationID,
		Role:           p.Role,
		CountryCode:    p.CountryCode,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
}
