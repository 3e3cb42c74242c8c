package repository

import "github.com/tu-usuario/marketplace-pro/internal/domain/entity"

// BusinessRepository puerto de persistencia para negocios.
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	Update(business *entity.Business) error

	// ListAccessible lista los negocios visibles para un usuario: los que
	// posee más aquel al que pertenece (businessID puede ser vacío).
	ListAccessible(ownerID, businessID string) ([]*entity.Business, error)
	// ListAll lista todos los negocios (solo superusuario).
	ListAll() ([]*entity.Business, error)
}
