package dto

import "time"

// CreateBusinessRequest entrada para crear un negocio adicional. El actor
// queda como dueño. InitialUser permite invitar al primer miembro en la
// misma operación.
type CreateBusinessRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	CanCreateUsers *bool  `json:"can_create_users"` // nil = true
	CanAssignRoles *bool  `json:"can_assign_roles"` // nil = true

	InitialUser *InviteUserRequest `json:"initial_user,omitempty"`
}

// UpdateBusinessRequest entrada para actualizar un negocio.
type UpdateBusinessRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=255"`
	CanCreateUsers *bool   `json:"can_create_users"`
	CanAssignRoles *bool   `json:"can_assign_roles"`
}

// BusinessResponse salida de un negocio.
type BusinessResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CanCreateUsers bool      `json:"can_create_users"`
	CanAssignRoles bool      `json:"can_assign_roles"`
	OwnerID        string    `json:"owner_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BusinessListResponse lista de negocios.
type BusinessListResponse struct {
	Items []BusinessResponse `json:"items"`
}
