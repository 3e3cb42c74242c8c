package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/marketplace-pro/internal/application/dto"
	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
	"github.com/tu-usuario/marketplace-pro/internal/domain/repository"
	"github.com/tu-usuario/marketplace-pro/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta el registro (usuario dueño + negocio) dentro de una
// transacción: o se crean ambos o ninguno.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		businessRepo repository.BusinessRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y cambio de
// contraseña (incluye el primer login del flujo de invitación).
type AuthUseCase struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	tx           TxRunner
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, businessRepo repository.BusinessRepository, tx TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, businessRepo: businessRepo, tx: tx, jwtCfg: jwtCfg}
}

// Register crea el usuario dueño y su negocio en una sola transacción y
// devuelve el token para login inmediato. El rol por defecto del dueño es
// admin; las capacidades del negocio default a true si no vienen.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || len(in.Password) < 8 || in.BusinessName == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleAdmin
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	business := &entity.Business{
		ID:             uuid.New().String(),
		Name:           in.BusinessName,
		CanCreateUsers: in.CanCreateUsers == nil || *in.CanCreateUsers,
		CanAssignRoles: in.CanAssignRoles == nil || *in.CanAssignRoles,
		OwnerID:        user.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// El usuario se crea sin negocio, luego el negocio con el usuario como
	// dueño y al final se vincula; el orden respeta las FKs cruzadas.
	err = uc.tx.RunRegistration(ctx, func(userRepo repository.UserRepository, businessRepo repository.BusinessRepository) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		if err := businessRepo.Create(business); err != nil {
			return err
		}
		user.BusinessID = business.ID
		return userRepo.Update(user)
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *userToResponse(user, business.Name),
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// El flag password_change_required en la respuesta le indica al frontend
// que debe forzar el cambio de contraseña (usuarios recién invitados).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := uc.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *userToResponse(user, uc.businessName(user)),
	}, nil
}

// ChangePassword cambia la contraseña del usuario autenticado. Es la pieza
// central del flujo de invitación: valida la contraseña actual, rechaza
// contraseñas temporales vencidas y limpia los flags de invitación.
func (uc *AuthUseCase) ChangePassword(actorID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 || in.NewPassword != in.ConfirmPassword {
		return domain.ErrInvalidInput
	}
	if in.NewPassword == in.OldPassword {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrInvalidInput
	}
	if user.TempPasswordExpired(time.Now()) {
		return domain.ErrTempPasswordExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.PasswordChangeRequired = false
	user.TempPasswordExpiresAt = nil
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// CurrentUser devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) CurrentUser(actorID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return userToResponse(user, uc.businessName(user)), nil
}

func (uc *AuthUseCase) generateToken(user *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, user.BusinessID, user.Role,
		user.IsSuperuser, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func (uc *AuthUseCase) businessName(user *entity.User) string {
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
