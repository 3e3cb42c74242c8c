package ports

// Invitation datos para el email de invitación de un usuario nuevo.
type Invitation struct {
	Email        string
	FirstName    string
	LastName     string
	Role         string
	BusinessName string
	TempPassword string
	InvitedBy    string // nombre del admin que invita (puede quedar vacío)
}

// Mailer puerto de salida para notificaciones por email. Es fire-and-forget
// desde la perspectiva del caso de uso: un fallo se registra en el log pero
// nunca aborta la creación del usuario.
type Mailer interface {
	SendInvitation(inv Invitation) error
}
