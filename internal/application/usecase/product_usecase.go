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

// ProductUseCase aplica las reglas del marketplace sobre productos: política
// de permisos por rol, scoping por negocio y el workflow de aprobación
// draft → pending_approval → approved. Todas las operaciones reciben el
// Actor explícitamente.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	businessRepo repository.BusinessRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, businessRepo repository.BusinessRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, businessRepo: businessRepo}
}

// Create crea un producto en estado draft. El status del cliente nunca se
// acepta; el snapshot del nombre del negocio se captura aquí y no cambia
// aunque el negocio se renombre después.
func (uc *ProductUseCase) Create(actor authz.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !authz.Allowed(actor, authz.ActionCreateProduct) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := entity.ValidatePrice(in.Price); err != nil {
		return nil, err
	}

	businessID := in.BusinessID
	if businessID == "" {
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
	if !authz.CanAccessBusiness(actor, business) {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	product := &entity.Product{
		ID:                   uuid.New().String(),
		BusinessID:           business.ID,
		Name:                 in.Name,
		Description:          in.Description,
		Price:                in.Price,
		Status:               entity.StatusDraft,
		BusinessNameSnapshot: business.Name,
		CreatedByID:          actor.ID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto dentro del scope del actor. Un producto de
// otro negocio se reporta como no encontrado, no como prohibido: el actor
// no tiene derecho a saber que existe.
func (uc *ProductUseCase) GetByID(actor authz.Actor, id string) (*dto.ProductResponse, error) {
	product, _, err := uc.scopedProduct(actor, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Para no-superusuarios solo name,
// description y price son mutables; status solo lo escribe un superusuario
// directamente (corrección administrativa, fuera del workflow).
func (uc *ProductUseCase) Update(actor authz.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, _, err := uc.scopedProduct(actor, id)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionEditProduct) {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if err := entity.ValidatePrice(*in.Price); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	if in.Status != nil && actor.IsSuperuser {
		if !entity.ValidStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto dentro del scope del actor.
func (uc *ProductUseCase) Delete(actor authz.Actor, id string) error {
	product, _, err := uc.scopedProduct(actor, id)
	if err != nil {
		return err
	}
	if !authz.Allowed(actor, authz.ActionDeleteProduct) {
		return domain.ErrForbidden
	}
	return uc.productRepo.Delete(product.ID)
}

// SubmitForApproval pasa un draft a pending_approval. Requiere permiso de
// edición; cualquier otro estado de partida es ErrInvalidTransition.
func (uc *ProductUseCase) SubmitForApproval(actor authz.Actor, id string) (*dto.ProductResponse, error) {
	product, _, err := uc.scopedProduct(actor, id)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionEditProduct) {
		return nil, domain.ErrForbidden
	}
	if err := product.SubmitForApproval(time.Now()); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Approve aprueba un producto pendiente y registra quién y cuándo.
// El permiso se chequea antes que el estado: un editor recibe ErrForbidden
// aunque el producto esté pendiente; un approver sobre un draft recibe
// ErrInvalidTransition y sobre un aprobado ErrAlreadyApproved.
func (uc *ProductUseCase) Approve(actor authz.Actor, id string) (*dto.ProductResponse, error) {
	product, _, err := uc.scopedProduct(actor, id)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionApproveProduct) {
		return nil, domain.ErrForbidden
	}
	if err := product.Approve(actor.ID, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista los productos dentro del scope del actor: superusuario ve
// todo; el resto ve los productos de su negocio y de los negocios que posee.
func (uc *ProductUseCase) List(actor authz.Actor, limit, offset int) (*dto.ProductListResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if actor.IsSuperuser {
		list, err = uc.productRepo.ListAll(limit, offset)
	} else {
		list, err = uc.productRepo.ListVisible(actor.ID, actor.BusinessID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// PublicList lista productos aprobados de todos los negocios, con campos
// reducidos. No requiere autenticación.
func (uc *ProductUseCase) PublicList(limit, offset int) (*dto.PublicProductListResponse, error) {
	list, err := uc.productRepo.ListApproved(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PublicProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.PublicProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.Price,
			BusinessName: p.BusinessNameSnapshot,
		})
	}
	return &dto.PublicProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// scopedProduct carga un producto y aplica el scoping por objeto. Devuelve
// ErrNotFound tanto si no existe como si está fuera del scope de lectura
// del actor; el negocio se devuelve para evitar una segunda consulta.
func (uc *ProductUseCase) scopedProduct(actor authz.Actor, id string) (*entity.Product, *entity.Business, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	business, err := uc.businessRepo.GetByID(product.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanAccessProduct(actor, product, business) {
		return nil, nil, domain.ErrNotFound
	}
	return product, business, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Status:       p.Status,
		BusinessID:   p.BusinessID,
		BusinessName: p.BusinessNameSnapshot,
		CreatedByID:  p.CreatedByID,
		ApprovedByID: p.ApprovedByID,
		ApprovedAt:   p.ApprovedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
