package entity

import "time"

// Roles válidos para User. Conjunto cerrado: cualquier otro valor
// se trata como rol desconocido y no recibe permisos.
const (
	RoleAdmin    = "admin"    // gestiona usuarios y productos de su negocio
	RoleEditor   = "editor"   // crea y edita productos, no aprueba
	RoleApprover = "approver" // aprueba productos, no crea ni edita
	RoleViewer   = "viewer"   // solo lectura
)

// ValidRole reporta si role pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleApprover, RoleViewer:
		return true
	}
	return false
}

// User representa un usuario del marketplace (pertenece a un Business, o a
// ninguno si está sin afiliar). Los campos de invitación soportan el flujo
// de contraseña temporal: el admin crea el usuario, se le envía una
// contraseña de 7 días de vigencia y debe cambiarla en el primer login.
type User struct {
	ID           string
	BusinessID   string // vacío = usuario sin afiliar
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // ver constantes Role*
	IsSuperuser  bool   // omite todos los chequeos de rol y de scope

	// Flujo de invitación con contraseña temporal.
	PasswordChangeRequired bool
	TempPasswordExpiresAt  *time.Time // nil = sin contraseña temporal
	InvitationSentAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TempPasswordExpired reporta si la contraseña temporal del usuario ya venció.
func (u *User) TempPasswordExpired(now time.Time) bool {
	return u.TempPasswordExpiresAt != nil && now.After(*u.TempPasswordExpiresAt)
}
