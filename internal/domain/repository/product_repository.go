package repository

import "github.com/tu-usuario/marketplace-pro/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error

	// ListVisible lista los productos de los negocios accesibles para el
	// actor: los negocios que posee más aquel al que pertenece.
	ListVisible(actorID, businessID string, limit, offset int) ([]*entity.Product, error)
	// ListAll lista todos los productos (solo superusuario).
	ListAll(limit, offset int) ([]*entity.Product, error)
	// ListApproved lista productos aprobados de todos los negocios
	// (listado público).
	ListApproved(limit, offset int) ([]*entity.Product, error)
	// ListApprovedVisible lista productos aprobados dentro del scope del
	// actor (contexto del chatbot).
	ListApprovedVisible(actorID, businessID string) ([]*entity.Product, error)
}
