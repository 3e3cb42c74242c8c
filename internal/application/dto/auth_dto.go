package dto

// RegisterRequest entrada de registro: crea el usuario dueño y su negocio
// en una sola operación. El rol por defecto del dueño es admin.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Role      string `json:"role" validate:"omitempty,oneof=admin editor approver viewer"`

	// Datos del negocio que se crea junto con el usuario.
	BusinessName   string `json:"business_name" validate:"required,min=1,max=255"`
	CanCreateUsers *bool  `json:"can_create_users"` // nil = true
	CanAssignRoles *bool  `json:"can_assign_roles"` // nil = true
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario (incluye el flag
// password_change_required para el flujo de invitación).
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangePasswordRequest entrada del cambio de contraseña (primer login de
// usuarios invitados o cambio voluntario).
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
