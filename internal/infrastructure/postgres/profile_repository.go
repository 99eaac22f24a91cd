package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `id, email, password_hash, organization_id, role, country_code, status, invite_token, created_at, updated_at`

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Create persiste un nuevo perfil.
func (r *ProfileRepo) Create(profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, organization_id, role, country_code, status, invite_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		profile.ID, profile.Email, profile.PasswordHash, profile.OrganizationID,
		profile.Role, profile.CountryCode, profile.Status, profile.InviteToken,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Upsert inserta el perfil o, si el email ya existe, actualiza organización y rol.
func (r *ProfileRepo) Upsert(profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, organization_id, role, country_code, status, invite_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (email)
		DO UPDATE SET organization_id = EXCLUDED.organization_id, role = EXCLUDED.role, updated_at = now()`
	_, err := r.pool.Exec(context.Background(), query,
		profile.ID, profile.Email, profile.PasswordHash, profile.OrganizationID,
		profile.Role, profile.CountryCode, profile.Status, profile.InviteToken,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) scanOne(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.OrganizationID, &p.Role,
		&p.CountryCode, &p.Status, &p.InviteToken, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id))
}

// GetByEmail obtiene un perfil por email.
func (r *ProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, email))
}

// GetByInviteToken obtiene el perfil invitado dueño del token de activación.
func (r *ProfileRepo) GetByInviteToken(token string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE invite_token = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, token))
}

// UpdatePassword fija el hash de contraseña y activa el perfil.
func (r *ProfileRepo) UpdatePassword(id, passwordHash string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE profiles SET password_hash = $2, status = 'active', invite_token = NULL, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update profile password: %w", err)
	}
	return nil
}

// ListByOrg lista los perfiles de una organización.
func (r *ProfileRepo) ListByOrg(organizationID string) ([]*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE organization_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(context.Background(), query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.OrganizationID, &p.Role,
			&p.CountryCode, &p.Status, &p.InviteToken, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
