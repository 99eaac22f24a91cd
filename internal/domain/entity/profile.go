package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleViewer  = "VIEWER"
)

// Estados de un perfil.
const (
	ProfileStatusActive  = "active"
	ProfileStatusInvited = "invited" // invitado, pendiente de fijar contraseña
)

// ValidRole indica si s es un rol conocido.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleManager || s == RoleViewer
}

// Profile es la identidad de un usuario dentro de una organización.
type Profile struct {
	ID             string
	Email          string
	PasswordHash   string
	OrganizationID string
	Role           string
	CountryCode    string
	Status         string
	InviteToken    *string // token de activación mientras Status == invited
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
