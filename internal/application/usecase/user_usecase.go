package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/marketplace-pro/internal/application/dto"
	"github.com/tu-usuario/marketplace-pro/internal/application/ports"
	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/authz"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
	"github.com/tu-usuario/marketplace-pro/internal/domain/repository"
	"github.com/tu-usuario/marketplace-pro/pkg/logger"
	"github.com/tu-usuario/marketplace-pro/pkg/password"
)

// tempPasswordTTL vigencia de la contraseña temporal de invitación.
const tempPasswordTTL = 7 * 24 * time.Hour

// UserUseCase administración de usuarios: el sistema de invitaciones con
// contraseña temporal y las reglas de scoping por negocio. Solo admins y
// superusuarios administran usuarios; el resto solo puede leerse a sí mismo.
type UserUseCase struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	mailer       ports.Mailer
	log          *logger.Logger
}

// NewUserUseCase construye el caso de uso. mailer puede ser nil (no se
// envían emails, solo se registra en el log).
func NewUserUseCase(userRepo repository.UserRepository, businessRepo repository.BusinessRepository, mailer ports.Mailer, log *logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, businessRepo: businessRepo, mailer: mailer, log: log}
}

// Invite crea un usuario con contraseña temporal y le envía el email de
// invitación. Un admin no-superusuario solo invita a su propio negocio y
// solo si el negocio tiene la capacidad can_create_users; el fallo del
// email se registra pero nunca aborta la creación.
func (uc *UserUseCase) Invite(actor authz.Actor, in dto.InviteUserRequest) (*dto.UserResponse, error) {
	if !actor.IsSuperuser && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleViewer
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	businessID := in.BusinessID
	if !actor.IsSuperuser {
		// Aislamiento: el admin siempre invita a su propio negocio,
		// ignorando cualquier business_id del payload.
		businessID = actor.BusinessID
	}
	if businessID == "" {
		return nil, domain.ErrInvalidInput
	}
	business, err := uc.businessRepo.GetByID(businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsSuperuser && !business.CanCreateUsers {
		return nil, domain.ErrForbidden
	}

	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	tempPass, err := password.Generate(password.TempLength)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expires := now.Add(tempPasswordTTL)
	user := &entity.User{
		ID:                     uuid.New().String(),
		BusinessID:             business.ID,
		Email:                  in.Email,
		PasswordHash:           string(hash),
		FirstName:              in.FirstName,
		LastName:               in.LastName,
		Role:                   role,
		PasswordChangeRequired: true,
		TempPasswordExpiresAt:  &expires,
		InvitationSentAt:       &now,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.sendInvitation(user, business, tempPass, actor)

	return userToResponse(user, business.Name), nil
}

// sendInvitation envía el email de invitación fire-and-forget.
func (uc *UserUseCase) sendInvitation(user *entity.User, business *entity.Business, tempPass string, actor authz.Actor) {
	if uc.mailer == nil {
		uc.log.Warn().Str("email", user.Email).Msg("mailer no configurado, invitación sin email")
		return
	}
	invitedBy := ""
	if inviter, err := uc.userRepo.GetByID(actor.ID); err == nil && inviter != nil {
		invitedBy = strings.TrimSpace(inviter.FirstName + " " + inviter.LastName)
	}
	inv := ports.Invitation{
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		BusinessName: business.Name,
		TempPassword: tempPass,
		InvitedBy:    invitedBy,
	}
	if err := uc.mailer.SendInvitation(inv); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("fallo el email de invitación")
	}
}

// GetByID obtiene un usuario: superusuario cualquiera, admin los de su
// negocio, el resto solo a sí mismo. Fuera de scope se reporta no
// encontrado.
func (uc *UserUseCase) GetByID(actor authz.Actor, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || !authz.CanReadUser(actor, user) {
		return nil, domain.ErrNotFound
	}
	return userToResponse(user, uc.businessName(user)), nil
}

// List lista usuarios según el rol del actor: superusuario todos, admin los
// de su negocio, el resto solo su propio registro.
func (uc *UserUseCase) List(actor authz.Actor) (*dto.UserListResponse, error) {
	var (
		list []*entity.User
		err  error
	)
	switch {
	case actor.IsSuperuser:
		list, err = uc.userRepo.ListAll()
	case actor.Role == entity.RoleAdmin && actor.BusinessID != "":
		list, err = uc.userRepo.ListByBusiness(actor.BusinessID)
	default:
		var self *entity.User
		self, err = uc.userRepo.GetByID(actor.ID)
		if self != nil {
			list = []*entity.User{self}
		}
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *userToResponse(u, uc.businessName(u)))
	}
	return &dto.UserListResponse{Items: items}, nil
}

// Update actualiza un usuario. El cambio de rol por un admin no-superusuario
// se descarta en silencio (el resto del update procede) si el negocio no
// tiene la capacidad can_assign_roles; el usuario queda siempre anclado al
// negocio del admin.
func (uc *UserUseCase) Update(actor authz.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanManageUser(actor, user) {
		return nil, domain.ErrForbidden
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Role != nil && *in.Role != user.Role {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		if uc.roleChangeAllowed(actor) {
			user.Role = *in.Role
		}
		// Si el negocio no permite asignar roles, el cambio se omite sin
		// error: comportamiento contractual del sistema de capacidades.
	}
	if !actor.IsSuperuser {
		user.BusinessID = actor.BusinessID
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return userToResponse(user, uc.businessName(user)), nil
}

// Delete elimina un usuario dentro del scope del actor.
func (uc *UserUseCase) Delete(actor authz.Actor, id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if !authz.CanManageUser(actor, user) {
		return domain.ErrForbidden
	}
	return uc.userRepo.Delete(id)
}

// roleChangeAllowed reporta si el actor puede cambiar roles: superusuario
// siempre; admin solo si su negocio tiene la capacidad can_assign_roles.
func (uc *UserUseCase) roleChangeAllowed(actor authz.Actor) bool {
	if actor.IsSuperuser {
		return true
	}
	if actor.BusinessID == "" {
		return false
	}
	business, err := uc.businessRepo.GetByID(actor.BusinessID)
	if err != nil || business == nil {
		return false
	}
	return business.CanAssignRoles
}

func (uc *UserUseCase) businessName(user *entity.User) string {
	if user.BusinessID == "" {
		return ""
	}
	business, err := uc.businessRepo.GetByID(user.BusinessID)
	if err != nil || business == nil {
		return ""
	}
	return business.Name
}

func userToResponse(u *entity.User, businessName string) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                     u.ID,
		Email:                  u.Email,
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		Role:                   u.Role,
		BusinessID:             u.BusinessID,
		BusinessName:           businessName,
		IsSuperuser:            u.IsSuperuser,
		PasswordChangeRequired: u.PasswordChangeRequired,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}
