package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/genekit/inventory-api/internal/application/appctx"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
	"github.com/genekit/inventory-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// InviteMailer entrega el correo de invitación. La entrega real es un
// colaborador externo; el puerto mantiene auditable el camino privilegiado.
type InviteMailer interface {
	SendInvite(ctx context.Context, email, activationURL string) error
}

// UseCase casos de uso de autenticación y gestión de usuarios:
// login, cambio de contraseña, perfil propio e invitación por rol.
type UseCase struct {
	profileRepo repository.ProfileRepository
	orgRepo     repository.OrganizationRepository
	mailer      InviteMailer
	jwtCfg      JWTConfig
	siteURL     string
}

// NewUseCase construye el caso de uso de auth. El mailer llega inyectado
// (nunca estado global): el camino de privilegio queda explícito en el wiring.
func NewUseCase(profileRepo repository.ProfileRepository, orgRepo repository.OrganizationRepository, mailer InviteMailer, jwtCfg JWTConfig, siteURL string) *UseCase {
	return &UseCase{profileRepo: profileRepo, orgRepo: orgRepo, mailer: mailer, jwtCfg: jwtCfg, siteURL: siteURL}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	profile, err := uc.profileRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if profile.Status != entity.ProfileStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, profile.OrganizationID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(profile)}, nil
}

// UpdatePassword cambia la contraseña del actor autenticado.
// Reglas: ambas requeridas, deben coincidir, mínimo 6 caracteres.
func (uc *UseCase) UpdatePassword(ctx context.Context, rc appctx.RequestContext, in dto.UpdatePasswordRequest) error {
	if err := rc.Validate(); err != nil {
		return err
	}
	if in.Password == "" || in.ConfirmPassword == "" {
		return domain.ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return domain.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.profileRepo.UpdatePassword(rc.ActorID, string(hash))
}

// ConfirmInvite canjea el token de activación de un perfil invitado: fija la
// contraseña, activa el perfil e invalida el token. Es la única entrada
// pública además de Login; un token desconocido o ya canjeado se rechaza sin
// distinguir el caso.
func (uc *UseCase) ConfirmInvite(ctx context.Context, in dto.ConfirmInviteRequest) (*dto.LoginResponse, error) {
	if in.Token == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Password == "" || in.ConfirmPassword == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	profile, err := uc.profileRepo.GetByInviteToken(in.Token)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Status != entity.ProfileStatusInvited {
		return nil, domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	// UpdatePassword activa el perfil y borra el token en la misma escritura.
	if err := uc.profileRepo.UpdatePassword(profile.ID, string(hash)); err != nil {
		return nil, err
	}
	profile.Status = entity.ProfileStatusActive
	profile.InviteToken = nil

	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, profile.OrganizationID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(profile)}, nil
}

// Me devuelve la identidad del actor con el nombre de su organización resuelto.
func (uc *UseCase) Me(ctx context.Context, rc appctx.RequestContext) (*dto.MeResponse, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	out := &dto.MeResponse{
		ID:             rc.ActorID,
		Email:          rc.Email,
		OrganizationID: rc.OrganizationID,
		Role:           rc.Role,
		CountryCode:    rc.CountryCode,
		MultiCountry:   rc.MultiCountry,
	}
	org, err := uc.orgRepo.GetByID(rc.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org != nil {
		out.OrganizationName = org.Name
	}
	return out, nil
}

// Invite crea un perfil invitado con la organización y país del invitador y el
// rol indicado, y dispara el correo de activación. Solo administradores.
func (uc *UseCase) Invite(ctx context.Context, rc appctx.RequestContext, in dto.InviteUserRequest) (*dto.UserResponse, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if !rc.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Email == "" || in.Role == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.profileRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	token, err := inviteToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	profile := &entity.Profile{
		ID:             uuid.New().String(),
		Email:          in.Email,
		OrganizationID: rc.OrganizationID,
		Role:           in.Role,
		CountryCode:    rc.CountryCode,
		Status:         entity.ProfileStatusInvited,
		InviteToken:    &token,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// Upsert: si el email apareció entre el chequeo y el insert, se corrige
	// organización y rol en lugar de fallar.
	if err := uc.profileRepo.Upsert(profile); err != nil {
		return nil, err
	}

	activationURL := uc.siteURL + "/auth/confirm?token=" + token + "&next=/update-password&type=invite"
	if err := uc.mailer.SendInvite(ctx, in.Email, activationURL); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(profile), nil
}

// ListUsers lista los perfiles de la organización del actor.
func (uc *UseCase) ListUsers(ctx context.Context, rc appctx.RequestContext) ([]*dto.UserResponse, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	profiles, err := uc.profileRepo.ListByOrg(rc.OrganizationID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, dto.ToUserResponse(p))
	}
	return out, nil
}

func inviteToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
