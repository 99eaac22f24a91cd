// Package appctx define el contexto de petición resuelto una sola vez por el
// middleware y pasado explícitamente a los casos de uso. Sustituye los lookups
// repetidos de tenant/país por un único objeto resuelto.
package appctx

import "github.com/genekit/inventory-api/internal/domain"

// RequestContext identidad y alcance del actor autenticado.
type RequestContext struct {
	ActorID        string
	Email          string
	OrganizationID string
	Role           string
	CountryCode    string
	// MultiCountry: la cuenta configurada en MULTI_COUNTRY_EMAIL ve todos los
	// países de su organización.
	MultiCountry bool
}

// Validate verifica las precondiciones de cualquier caso de uso autenticado:
// actor presente y tenant resuelto.
func (rc RequestContext) Validate() error {
	if rc.ActorID == "" {
		return domain.ErrNotAuthenticated
	}
	if rc.OrganizationID == "" {
		return domain.ErrUserContext
	}
	return nil
}

// CanSee indica si el actor puede ver un recurso del tenant y país dados.
// La cuenta multi-país ve todos los países de su organización; nunca otros tenants.
func (rc RequestContext) CanSee(organizationID, countryCode string) bool {
	if organizationID != rc.OrganizationID {
		return false
	}
	return rc.MultiCountry || countryCode == rc.CountryCode
}

// IsAdmin indica si el actor tiene rol de administrador.
func (rc RequestContext) IsAdmin() bool {
	return rc.Role == "ADMIN"
}
