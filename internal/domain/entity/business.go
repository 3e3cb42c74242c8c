package entity

import "time"

// Business representa una organización/tenant del marketplace. Es la unidad
// de aislamiento de datos: usuarios y productos pertenecen a un Business.
// Las dos capacidades gobiernan lo que los admins del negocio pueden hacer:
//   - CanCreateUsers: habilita invitar nuevos miembros.
//   - CanAssignRoles: habilita cambiar el rol de un miembro. Si está apagada,
//     el cambio de rol se descarta en silencio (el resto del update procede).
type Business struct {
	ID             string
	Name           string
	CanCreateUsers bool
	CanAssignRoles bool
	OwnerID        string // vacío = sin dueño asignado
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
