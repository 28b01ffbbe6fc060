package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/fixture-cleanup/internal/application/dto"
	"github.com/jhoicas/fixture-cleanup/internal/domain"
	"github.com/jhoicas/fixture-cleanup/internal/domain/entity"
	"github.com/jhoicas/fixture-cleanup/internal/domain/repository"
	"github.com/jhoicas/fixture-cleanup/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y resolución de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera el token de sesión y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		},
	}, nil
}

// ResolveSession valida el token y construye la sesión.
// Un claim de rol desconocido no invalida la sesión: queda sin capacidades.
func (uc *AuthUseCase) ResolveSession(token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		role = ""
	}
	return &entity.Session{UserID: claims.UserID, Email: claims.Email, Role: role}, nil
}

// SessionTTLMinutes duración de la sesión emitida por Login.
func (uc *AuthUseCase) SessionTTLMinutes() int {
	return uc.jwtCfg.ExpMinutes
}
