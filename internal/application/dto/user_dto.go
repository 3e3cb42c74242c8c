package dto

import "time"

// InviteUserRequest entrada para invitar un usuario a un negocio. No lleva
// password: se genera una contraseña temporal y se envía por email.
type InviteUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"omitempty,max=150"`
	LastName   string `json:"last_name" validate:"omitempty,max=150"`
	Role       string `json:"role" validate:"omitempty,oneof=admin editor approver viewer"`
	BusinessID string `json:"business_id" validate:"omitempty,uuid"` // solo superusuario
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
// El cambio de rol puede descartarse en silencio si el negocio no tiene
// la capacidad can_assign_roles.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin editor approver viewer"`
}

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID                     string    `json:"id"`
	Email                  string    `json:"email"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	Role                   string    `json:"role"`
	BusinessID             string    `json:"business_id,omitempty"`
	BusinessName           string    `json:"business_name,omitempty"`
	IsSuperuser            bool      `json:"is_superuser"`
	PasswordChangeRequired bool      `json:"password_change_required"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// UserListResponse lista de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}
