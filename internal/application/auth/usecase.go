package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
	"github.com/greengotts/greengotts-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: gate de allowlist, registro,
// login por password y login por identidad externa.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	allowlist repository.AllowlistRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, allowlist repository.AllowlistRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, allowlist: allowlist, jwtCfg: jwtCfg}
}

// CheckAllowlist evalúa el gate de pre-registro para un email. Corre antes de
// que exista User alguno: decide si una cuenta nueva puede crearse, no qué
// puede hacer una existente.
func (uc *AuthUseCase) CheckAllowlist(ctx context.Context, email string) (entity.AllowlistDecision, error) {
	normalized, err := entity.NormalizeEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	entry, err := uc.allowlist.GetByEmail(ctx, normalized)
	if err != nil {
		return "", err
	}
	return entity.DecisionForEntry(entry), nil
}

// Register crea una cuenta por email/password. El email debe estar aprobado
// en el allowlist; si ya existe cuenta con ese email devuelve
// ErrEmailAlreadyExists.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	normalized, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	decision, err := uc.CheckAllowlist(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if decision != entity.DecisionApproved {
		return nil, fmt.Errorf("%w (%s)", domain.ErrNotAllowlisted, decision)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, normalized)
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
	name := in.DisplayName
	if name == "" {
		name = normalized
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        normalized,
		DisplayName:  name,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario. Una
// cuenta inactiva recibe ErrForbidden aunque las credenciales sean correctas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	normalized, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	user, err := uc.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.PasswordHash == "" {
		// cuenta creada por identidad externa: no tiene password
		return nil, domain.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.IsActive() {
		return nil, fmt.Errorf("%w: cuenta inactiva", domain.ErrForbidden)
	}
	return uc.issueToken(user)
}

// LoginExternal entra (o crea la cuenta) con una identidad ya verificada por
// el proveedor externo. El gate de allowlist se evalúa en CADA login: una
// entrada revocada nunca permite entrar aunque antes estuviera aprobada.
func (uc *AuthUseCase) LoginExternal(ctx context.Context, in dto.ExternalLoginRequest) (*dto.LoginResponse, error) {
	normalized, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	decision, err := uc.CheckAllowlist(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if decision != entity.DecisionApproved {
		return nil, fmt.Errorf("%w (%s)", domain.ErrNotAllowlisted, decision)
	}

	user, err := uc.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		now := time.Now()
		name := in.DisplayName
		if name == "" {
			name = normalized
		}
		user = &entity.User{
			ID:          uuid.New().String(),
			Email:       normalized,
			DisplayName: name,
			Status:      entity.UserStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	if !user.IsActive() {
		return nil, fmt.Errorf("%w: cuenta inactiva", domain.ErrForbidden)
	}
	return uc.issueToken(user)
}

// ChangePassword verifica el password actual y fija el nuevo.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.PasswordHash == "" {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthenticated
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

func (uc *AuthUseCase) issueToken(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
	}
}
