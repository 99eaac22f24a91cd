// Package mail implementa el puerto de correo de invitaciones. La entrega real
// de correo es un colaborador externo del sistema; esta implementación registra
// el enlace de activación en el log para entornos de desarrollo y pruebas.
package mail

import (
	"context"

	"github.com/genekit/inventory-api/pkg/logger"
)

// LogMailer escribe la invitación en el log en lugar de enviarla.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de log.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// SendInvite registra el correo y el enlace de activación.
func (m *LogMailer) SendInvite(ctx context.Context, email, activationURL string) error {
	m.log.Info().
		Str("email", email).
		Str("activation_url", activationURL).
		Msg("invitación generada")
	return nil
}
