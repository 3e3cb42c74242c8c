package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/marketplace-pro/internal/application/dto"
	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/authz"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
	"github.com/tu-usuario/marketplace-pro/internal/domain/repository"
)

// BusinessUseCase operaciones sobre negocios: listado con scoping por
// dueño/afiliación, creación de negocios adicionales y actualización de
// capacidades. Los flags can_create_users y can_assign_roles gobiernan la
// administración de usuarios en UserUseCase.
type BusinessUseCase struct {
	businessRepo repository.BusinessRepository
	users        *UserUseCase
}

// NewBusinessUseCase construye el caso de uso. users se reutiliza para la
// invitación del miembro inicial al crear un negocio.
func NewBusinessUseCase(businessRepo repository.BusinessRepository, users *UserUseCase) *BusinessUseCase {
	return &BusinessUseCase{businessRepo: businessRepo, users: users}
}

// Create crea un negocio adicional con el actor como dueño. Si el payload
// trae initial_user se invita a ese miembro al nuevo negocio en la misma
// operación; el fallo de la invitación no revierte la creación del negocio.
func (uc *BusinessUseCase) Create(actor authz.Actor, in dto.CreateBusinessRequest) (*dto.BusinessResponse, error) {
	if !actor.IsSuperuser && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	business := &entity.Business{
		ID:             uuid.New().String(),
		Name:           in.Name,
		CanCreateUsers: boolOrDefault(in.CanCreateUsers, true),
		CanAssignRoles: boolOrDefault(in.CanAssignRoles, true),
		OwnerID:        actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.businessRepo.Create(business); err != nil {
		return nil, err
	}

	if in.InitialUser != nil && uc.users != nil {
		invite := *in.InitialUser
		invite.BusinessID = business.ID
		// El dueño recién creado invita sobre su propio negocio, que nace
		// con las capacidades ya resueltas.
		ownerActor := actor
		ownerActor.BusinessID = business.ID
		if _, err := uc.users.Invite(ownerActor, invite); err != nil {
			uc.users.log.Warn().Err(err).Str("business_id", business.ID).Msg("fallo la invitación del usuario inicial")
		}
	}

	return businessToResponse(business), nil
}

// GetByID obtiene un negocio dentro del scope del actor: dueño, miembro o
// superusuario. Fuera de scope se reporta no encontrado.
func (uc *BusinessUseCase) GetByID(actor authz.Actor, id string) (*dto.BusinessResponse, error) {
	business, err := uc.businessRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsSuperuser && !authz.CanAccessBusiness(actor, business) {
		return nil, domain.ErrNotFound
	}
	return businessToResponse(business), nil
}

// List lista los negocios visibles para el actor: superusuario todos, el
// resto los que posee más aquel al que pertenece.
func (uc *BusinessUseCase) List(actor authz.Actor) (*dto.BusinessListResponse, error) {
	var (
		list []*entity.Business
		err  error
	)
	if actor.IsSuperuser {
		list, err = uc.businessRepo.ListAll()
	} else {
		list, err = uc.businessRepo.ListAccessible(actor.ID, actor.BusinessID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.BusinessResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *businessToResponse(b))
	}
	return &dto.BusinessListResponse{Items: items}, nil
}

// Update actualiza nombre y capacidades de un negocio. Solo el dueño, un
// admin del negocio o un superusuario.
func (uc *BusinessUseCase) Update(actor authz.Actor, id string, in dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	business, err := uc.businessRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsSuperuser && !authz.CanAccessBusiness(actor, business) {
		return nil, domain.ErrNotFound
	}
	if !actor.IsSuperuser && business.OwnerID != actor.ID && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		business.Name = *in.Name
	}
	if in.CanCreateUsers != nil {
		business.CanCreateUsers = *in.CanCreateUsers
	}
	if in.CanAssignRoles != nil {
		business.CanAssignRoles = *in.CanAssignRoles
	}
	business.UpdatedAt = time.Now()

	if err := uc.businessRepo.Update(business); err != nil {
		return nil, err
	}
	return businessToResponse(business), nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func businessToResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:             b.ID,
		Name:           b.Name,
		CanCreateUsers: b.CanCreateUsers,
		CanAssignRoles: b.CanAssignRoles,
		OwnerID:        b.OwnerID,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
