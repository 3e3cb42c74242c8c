package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Workflow draft → pending_approval → approved
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitForApproval_DesdeDraft(t *testing.T) {
	now := time.Now()
	p := &entity.Product{ID: "p1", Status: entity.StatusDraft}

	require.NoError(t, p.SubmitForApproval(now))
	assert.Equal(t, entity.StatusPendingApproval, p.Status)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestSubmitForApproval_DesdePendingFalla(t *testing.T) {
	p := &entity.Product{ID: "p1", Status: entity.StatusPendingApproval}
	err := p.SubmitForApproval(time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.StatusPendingApproval, p.Status, "el estado no debe mutar en un rechazo")
}

func TestApprove_DesdePendingRegistraAuditoria(t *testing.T) {
	now := time.Now()
	p := &entity.Product{ID: "p1", Status: entity.StatusPendingApproval}

	require.NoError(t, p.Approve("approver-1", now))
	assert.Equal(t, entity.StatusApproved, p.Status)
	assert.Equal(t, "approver-1", p.ApprovedByID)
	require.NotNil(t, p.ApprovedAt)
	assert.Equal(t, now, *p.ApprovedAt)
}

// Aprobar un draft directamente no puede saltarse la revisión.
func TestApprove_DesdeDraftFalla(t *testing.T) {
	p := &entity.Product{ID: "p1", Status: entity.StatusDraft}
	err := p.Approve("approver-1", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, p.ApprovedByID)
}

// Re-aprobar es un error distinguible: el cliente puede tratarlo como no-op.
func TestApprove_YaAprobadoRetornaErrAlreadyApproved(t *testing.T) {
	approvedAt := time.Now().Add(-time.Hour)
	p := &entity.Product{
		ID: "p1", Status: entity.StatusApproved,
		ApprovedByID: "approver-1", ApprovedAt: &approvedAt,
	}

	err := p.Approve("approver-2", time.Now())
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
	assert.Equal(t, "approver-1", p.ApprovedByID, "la auditoría original no debe sobrescribirse")
	assert.Equal(t, approvedAt, *p.ApprovedAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de precio
// ──────────────────────────────────────────────────────────────────────────────

func TestValidStatus(t *testing.T) {
	for _, status := range []string{"draft", "pending_approval", "approved"} {
		assert.True(t, entity.ValidStatus(status), status)
	}
	assert.False(t, entity.ValidStatus("bananas"))
	assert.False(t, entity.ValidStatus(""))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, entity.ValidatePrice(decimal.NewFromFloat(19.99)))
	assert.NoError(t, entity.ValidatePrice(decimal.Zero), "precio cero es válido (gratis)")
	assert.ErrorIs(t, entity.ValidatePrice(decimal.NewFromFloat(-0.01)), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Roles y contraseña temporal
// ──────────────────────────────────────────────────────────────────────────────

func TestValidRole(t *testing.T) {
	for _, role := range []string{"admin", "editor", "approver", "viewer"} {
		assert.True(t, entity.ValidRole(role), role)
	}
	assert.False(t, entity.ValidRole("manager"))
	assert.False(t, entity.ValidRole(""))
}

func TestTempPasswordExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	assert.True(t, (&entity.User{TempPasswordExpiresAt: &past}).TempPasswordExpired(now))
	assert.False(t, (&entity.User{TempPasswordExpiresAt: &future}).TempPasswordExpired(now))
	assert.False(t, (&entity.User{}).TempPasswordExpired(now), "sin contraseña temporal no hay expiración")
}
