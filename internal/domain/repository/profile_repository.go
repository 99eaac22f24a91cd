package repository

import "github.com/genekit/inventory-api/internal/domain/entity"

// ProfileRepository puerto de persistencia de perfiles de usuario.
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	GetByEmail(email string) (*entity.Profile, error)
	// GetByInviteToken busca el perfil invitado dueño del token de activación.
	GetByInviteToken(token string) (*entity.Profile, error)
	// Upsert inserta el perfil o, si ya existe, actualiza organización y rol.
	// Cubre la carrera entre la invitación y cualquier alta concurrente del mismo email.
	Upsert(profile *entity.Profile) error
	UpdatePassword(id, passwordHash string) error
	ListByOrg(organizationID string) ([]*entity.Profile, error)
}
