package mail

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/tu-usuario/marketplace-pro/internal/application/ports"
	"github.com/tu-usuario/marketplace-pro/pkg/config"
)

// Verificar en tiempo de compilación que SMTPMailer implementa Mailer.
var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía los emails de invitación por SMTP usando gomail.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer construye el adaptador con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Enabled reporta si hay un servidor SMTP configurado.
func (m *SMTPMailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendInvitation envía el email de invitación con las credenciales
// temporales del nuevo usuario.
func (m *SMTPMailer) SendInvitation(inv ports.Invitation) error {
	if !m.Enabled() {
		return fmt.Errorf("mail: SMTP no configurado")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", inv.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Welcome to %s - Product Marketplace", inv.BusinessName))
	msg.SetBody("text/plain", invitationBody(inv))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: enviar invitación: %w", err)
	}
	return nil
}

// invitationBody arma el cuerpo en texto plano: credenciales, rol y la
// advertencia de vigencia de la contraseña temporal.
func invitationBody(inv ports.Invitation) string {
	var b strings.Builder

	name := strings.TrimSpace(inv.FirstName + " " + inv.LastName)
	if name == "" {
		name = inv.Email
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", name)

	if inv.InvitedBy != "" {
		fmt.Fprintf(&b, "You have been invited to join %s on the Product Marketplace platform by %s.\n\n", inv.BusinessName, inv.InvitedBy)
	} else {
		fmt.Fprintf(&b, "You have been invited to join %s on the Product Marketplace platform.\n\n", inv.BusinessName)
	}

	b.WriteString("Your account has been created with the following details:\n\n")
	fmt.Fprintf(&b, "Email: %s\n", inv.Email)
	fmt.Fprintf(&b, "Role: %s\n", inv.Role)
	fmt.Fprintf(&b, "Temporary Password: %s\n\n", inv.TempPassword)

	b.WriteString("IMPORTANT: This temporary password will expire in 7 days and must be changed on your first login.\n\n")
	b.WriteString("To get started:\n")
	b.WriteString("1. Login with your email and temporary password\n")
	b.WriteString("2. You will be prompted to create your own secure password\n\n")
	b.WriteString("Best regards,\nProduct Marketplace Team\n")

	return b.String()
}
