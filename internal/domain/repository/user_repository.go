package repository

import "github.com/tu-usuario/marketplace-pro/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
// Las implementaciones devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error

	// ListByBusiness lista los miembros de un negocio.
	ListByBusiness(businessID string) ([]*entity.User, error)
	// ListAll lista todos los usuarios (solo superusuario).
	ListAll() ([]*entity.User, error)
}
