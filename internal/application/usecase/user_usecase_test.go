package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/marketplace-pro/internal/application/dto"
	"github.com/tu-usuario/marketplace-pro/internal/application/usecase"
	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/authz"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
	"github.com/tu-usuario/marketplace-pro/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type userFixture struct {
	uc           *usecase.UserUseCase
	userRepo     *memUserRepo
	businessRepo *memBusinessRepo
	mailer       *fakeMailer

	admin  authz.Actor
	viewer authz.Actor
	super  authz.Actor
}

func newUserFixture(t *testing.T, canCreateUsers, canAssignRoles bool) *userFixture {
	t.Helper()
	businessRepo := &memBusinessRepo{}
	require.NoError(t, businessRepo.Create(&entity.Business{
		ID: "b1", Name: "Acme Farms", OwnerID: "admin-1",
		CanCreateUsers: canCreateUsers, CanAssignRoles: canAssignRoles,
	}))
	require.NoError(t, businessRepo.Create(&entity.Business{
		ID: "b2", Name: "Rival Corp", OwnerID: "admin-2",
		CanCreateUsers: true, CanAssignRoles: true,
	}))

	userRepo := &memUserRepo{}
	require.NoError(t, userRepo.Create(&entity.User{
		ID: "admin-1", BusinessID: "b1", Email: "admin@acme.test",
		FirstName: "Ana", LastName: "Gómez", Role: entity.RoleAdmin,
	}))

	mailer := &fakeMailer{}
	return &userFixture{
		uc:           usecase.NewUserUseCase(userRepo, businessRepo, mailer, testLogger()),
		userRepo:     userRepo,
		businessRepo: businessRepo,
		mailer:       mailer,
		admin:        authz.Actor{ID: "admin-1", BusinessID: "b1", Role: entity.RoleAdmin},
		viewer:       authz.Actor{ID: "viewer-1", BusinessID: "b1", Role: entity.RoleViewer},
		super:        authz.Actor{ID: "root", IsSuperuser: true},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Invite
// ──────────────────────────────────────────────────────────────────────────────

func TestUserInvite_FlujoCompleto(t *testing.T) {
	f := newUserFixture(t, true, true)

	out, err := f.uc.Invite(f.admin, dto.InviteUserRequest{
		Email: "nuevo@acme.test", FirstName: "Luis", LastName: "Pérez", Role: entity.RoleEditor,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEditor, out.Role)
	assert.Equal(t, "b1", out.BusinessID)
	assert.True(t, out.PasswordChangeRequired, "el invitado debe cambiar la contraseña temporal")

	stored, err := f.userRepo.GetByEmail("nuevo@acme.test")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.TempPasswordExpiresAt)
	require.NotNil(t, stored.InvitationSentAt)

	// El email lleva la contraseña temporal en claro y el hash almacenado
	// corresponde a ella.
	require.Len(t, f.mailer.sent, 1)
	inv := f.mailer.sent[0]
	assert.Equal(t, "nuevo@acme.test", inv.Email)
	assert.Equal(t, "Acme Farms", inv.BusinessName)
	assert.Equal(t, "Ana Gómez", inv.InvitedBy)
	assert.Len(t, inv.TempPassword, password.TempLength)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(inv.TempPassword)))
}

func TestUserInvite_RolPorDefectoViewer(t *testing.T) {
	f := newUserFixture(t, true, true)

	out, err := f.uc.Invite(f.admin, dto.InviteUserRequest{Email: "nuevo@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, out.Role)
}

func TestUserInvite_SinCapacidadCanCreateUsers(t *testing.T) {
	f := newUserFixture(t, false, true)

	_, err := f.uc.Invite(f.admin, dto.InviteUserRequest{Email: "nuevo@acme.test"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El superusuario no está sujeto a la capacidad.
	_, err = f.uc.Invite(f.super, dto.InviteUserRequest{Email: "nuevo@acme.test", BusinessID: "b1"})
	assert.NoError(t, err)
}

func TestUserInvite_NoAdminProhibido(t *testing.T) {
	f := newUserFixture(t, true, true)

	_, err := f.uc.Invite(f.viewer, dto.InviteUserRequest{Email: "nuevo@acme.test"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserInvite_EmailDuplicado(t *testing.T) {
	f := newUserFixture(t, true, true)

	_, err := f.uc.Invite(f.admin, dto.InviteUserRequest{Email: "admin@acme.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserInvite_RolInvalido(t *testing.T) {
	f := newUserFixture(t, true, true)

	_, err := f.uc.Invite(f.admin, dto.InviteUserRequest{Email: "nuevo@acme.test", Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El admin queda anclado a su negocio: el business_id del payload se ignora.
func TestUserInvite_AdminAncladoASuNegocio(t *testing.T) {
	f := newUserFixture(t, true, true)

	out, err := f.uc.Invite(f.admin, dto.InviteUserRequest{
		Email: "nuevo@acme.test", BusinessID: "b2",
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", out.BusinessID)

	// El superusuario sí elige el negocio destino.
	out, err = f.uc.Invite(f.super, dto.InviteUserRequest{
		Email: "otro@rival.test", BusinessID: "b2",
	})
	require.NoError(t, err)
	assert.Equal(t, "b2", out.BusinessID)
	assert.Equal(t, "Rival Corp", out.BusinessName)
}

func TestUserInvite_FalloDeEmailNoAborta(t *testing.T) {
	f := newUserFixture(t, true, true)
	f.mailer.err = errors.New("smtp: connection refused")

	out, err := f.uc.Invite(f.admin, dto.InviteUserRequest{Email: "nuevo@acme.test"})
	require.NoError(t, err, "el fallo del email nunca revierte la creación")

	stored, err := f.userRepo.GetByID(out.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func inviteMember(t *testing.T, f *userFixture, email string) string {
	t.Helper()
	out, err := f.uc.Invite(f.admin, dto.InviteUserRequest{Email: email, FirstName: "Luis"})
	require.NoError(t, err)
	return out.ID
}

// Sin can_assign_roles el cambio de rol se descarta en silencio pero el
// resto del update procede.
func TestUserUpdate_CambioDeRolDescartadoSinCapacidad(t *testing.T) {
	f := newUserFixture(t, true, false)
	id := inviteMember(t, f, "nuevo@acme.test")

	role := entity.RoleEditor
	firstName := "Renombrado"
	out, err := f.uc.Update(f.admin, id, dto.UpdateUserRequest{Role: &role, FirstName: &firstName})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, out.Role, "sin can_assign_roles el rol no cambia")
	assert.Equal(t, "Renombrado", out.FirstName, "el resto del update sí procede")
}

func TestUserUpdate_CambioDeRolConCapacidad(t *testing.T) {
	f := newUserFixture(t, true, true)
	id := inviteMember(t, f, "nuevo@acme.test")

	role := entity.RoleApprover
	out, err := f.uc.Update(f.admin, id, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleApprover, out.Role)
}

func TestUserUpdate_FueraDeScopeProhibido(t *testing.T) {
	f := newUserFixture(t, true, true)
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "ajeno-1", BusinessID: "b2", Email: "ajeno@rival.test", Role: entity.RoleViewer,
	}))

	firstName := "X"
	_, err := f.uc.Update(f.admin, "ajeno-1", dto.UpdateUserRequest{FirstName: &firstName})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.uc.Delete(f.admin, "ajeno-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestUserList_ScopingPorRol(t *testing.T) {
	f := newUserFixture(t, true, true)
	inviteMember(t, f, "uno@acme.test")
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "viewer-1", BusinessID: "b1", Email: "viewer@acme.test", Role: entity.RoleViewer,
	}))
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "ajeno-1", BusinessID: "b2", Email: "ajeno@rival.test", Role: entity.RoleViewer,
	}))

	all, err := f.uc.List(f.super)
	require.NoError(t, err)
	assert.Len(t, all.Items, 4, "el superusuario ve todos los usuarios")

	mine, err := f.uc.List(f.admin)
	require.NoError(t, err)
	assert.Len(t, mine.Items, 3, "el admin ve los de su negocio")

	self, err := f.uc.List(f.viewer)
	require.NoError(t, err)
	require.Len(t, self.Items, 1, "el viewer solo se ve a sí mismo")
	assert.Equal(t, "viewer-1", self.Items[0].ID)
}

func TestUserGetByID_FueraDeScopeEsNotFound(t *testing.T) {
	f := newUserFixture(t, true, true)
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "viewer-1", BusinessID: "b1", Email: "viewer@acme.test", Role: entity.RoleViewer,
	}))
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "otro-1", BusinessID: "b1", Email: "otro@acme.test", Role: entity.RoleViewer,
	}))

	// El viewer se lee a sí mismo pero no a un compañero.
	out, err := f.uc.GetByID(f.viewer, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, "viewer@acme.test", out.Email)
	assert.Equal(t, "Acme Farms", out.BusinessName)

	_, err = f.uc.GetByID(f.viewer, "otro-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
