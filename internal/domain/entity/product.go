package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/marketplace-pro/internal/domain"
)

// Estados del workflow de aprobación de productos. Las transiciones son
// unidireccionales: draft → pending_approval → approved. No existe reversa
// ni rechazo; un superusuario puede corregir el status directamente desde
// el caso de uso de actualización.
const (
	StatusDraft           = "draft"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
)

// Product representa un producto publicado por un Business en el marketplace.
// BusinessNameSnapshot es una copia desnormalizada del nombre del negocio
// capturada en la creación: si el negocio se renombra después, el histórico
// del producto conserva el nombre original.
type Product struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
	Price       decimal.Decimal
	Status      string // ver constantes Status*

	BusinessNameSnapshot string

	CreatedByID  string
	ApprovedByID string     // vacío hasta que se aprueba
	ApprovedAt   *time.Time // nil hasta que se aprueba

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidStatus reporta si status pertenece al conjunto cerrado de estados.
func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPendingApproval, StatusApproved:
		return true
	}
	return false
}

// ValidatePrice rechaza precios negativos. Cero es válido.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// SubmitForApproval pasa el producto de draft a pending_approval.
// Cualquier otro estado de partida es una transición inválida.
func (p *Product) SubmitForApproval(now time.Time) error {
	if p.Status != StatusDraft {
		return domain.ErrInvalidTransition
	}
	p.Status = StatusPendingApproval
	p.UpdatedAt = now
	return nil
}

// Approve pasa el producto de pending_approval a approved y registra la
// auditoría (quién y cuándo). Un producto ya aprobado retorna
// ErrAlreadyApproved (distinguible de una transición genérica inválida);
// un draft retorna ErrInvalidTransition porque no puede saltarse la revisión.
func (p *Product) Approve(approverID string, now time.Time) error {
	switch p.Status {
	case StatusApproved:
		return domain.ErrAlreadyApproved
	case StatusPendingApproval:
		p.Status = StatusApproved
		p.ApprovedByID = approverID
		p.ApprovedAt = &now
		p.UpdatedAt = now
		return nil
	default:
		return domain.ErrInvalidTransition
	}
}
