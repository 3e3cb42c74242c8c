// Package authz implementa la política de autorización del marketplace:
// una tabla cerrada rol → acciones más el scoping por objeto (negocio).
// Es lógica pura: no consulta persistencia ni guarda estado.
package authz

import (
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
)

// Action identifica una operación sobre productos sujeta a permisos.
type Action string

const (
	ActionCreateProduct  Action = "create_product"
	ActionEditProduct    Action = "edit_product"
	ActionDeleteProduct  Action = "delete_product"
	ActionApproveProduct Action = "approve_product"
	ActionViewProduct    Action = "view_product"
)

// Actor es el contexto de autorización de la petición en curso. Se construye
// desde los claims del JWT en el middleware y se pasa explícitamente a cada
// caso de uso; no hay estado ambiental tipo request.user.
type Actor struct {
	ID          string
	BusinessID  string // vacío = sin afiliar
	Role        string
	IsSuperuser bool
}

// rolePermissions es la tabla fija de permisos por rol. Un rol desconocido
// no aparece en la tabla y por lo tanto niega todo.
var rolePermissions = map[string]map[Action]bool{
	entity.RoleAdmin: {
		ActionCreateProduct:  true,
		ActionEditProduct:    true,
		ActionDeleteProduct:  true,
		ActionApproveProduct: true,
		ActionViewProduct:    true,
	},
	entity.RoleEditor: {
		ActionCreateProduct: true,
		ActionEditProduct:   true,
		ActionViewProduct:   true,
	},
	entity.RoleApprover: {
		ActionApproveProduct: true,
		ActionViewProduct:    true,
	},
	entity.RoleViewer: {
		ActionViewProduct: true,
	},
}

// Allowed reporta si el actor puede ejecutar la acción según su rol.
// Superusuario siempre puede, sin importar el rol.
func Allowed(actor Actor, action Action) bool {
	if actor.IsSuperuser {
		return true
	}
	return rolePermissions[actor.Role][action]
}

// CanAccessBusiness reporta si el actor puede operar sobre recursos del
// negocio indicado: es miembro, o es el dueño. Esto permite la doble
// afiliación (dueño del negocio A, miembro del negocio B).
func CanAccessBusiness(actor Actor, business *entity.Business) bool {
	if actor.IsSuperuser {
		return true
	}
	if business == nil {
		return false
	}
	if actor.BusinessID != "" && business.ID == actor.BusinessID {
		return true
	}
	return business.OwnerID != "" && business.OwnerID == actor.ID
}

// CanAccessProduct aplica el scoping por objeto sobre un producto: el actor
// debe poder acceder al negocio dueño del producto. El permiso de acción se
// chequea por separado con Allowed.
func CanAccessProduct(actor Actor, product *entity.Product, business *entity.Business) bool {
	if actor.IsSuperuser {
		return true
	}
	if product == nil || business == nil || product.BusinessID != business.ID {
		return false
	}
	return CanAccessBusiness(actor, business)
}

// CanManageUser reporta si el actor puede administrar (editar/eliminar) al
// usuario objetivo: superusuario siempre; admin solo dentro de su negocio.
func CanManageUser(actor Actor, target *entity.User) bool {
	if actor.IsSuperuser {
		return true
	}
	if target == nil || actor.Role != entity.RoleAdmin {
		return false
	}
	return target.BusinessID != "" && target.BusinessID == actor.BusinessID
}

// CanReadUser reporta si el actor puede leer el registro del usuario
// objetivo: lo que permite CanManageUser, más leerse a sí mismo.
func CanReadUser(actor Actor, target *entity.User) bool {
	if target != nil && target.ID == actor.ID {
		return true
	}
	return CanManageUser(actor, target)
}
