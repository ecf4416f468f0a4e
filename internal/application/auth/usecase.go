package auth

import (
	"context"
	"strings"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
	"github.com/cultiva/reponedores-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de inicio de sesión.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	jwtCfg    JWTConfig
	dummyHash string // se compara cuando el correo no existe, para igualar tiempos
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hasher PasswordHasher, jwtCfg JWTConfig) *AuthUseCase {
	dummy, _ := hasher.Hash("reponedores-dummy-password")
	return &AuthUseCase{userRepo: userRepo, hasher: hasher, jwtCfg: jwtCfg, dummyHash: dummy}
}

// Login verifica correo/password y emite un JWT con id, rol y nombre.
// Usuario inexistente y password incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Correo))
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.hasher.Check(in.Password, uc.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Check(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	rol := entity.NormalizeRole(user.Rol)
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: user.ID,
		Rol:    rol,
		Nombre: user.Nombre,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Rol: rol, Nombre: user.Nombre}, nil
}
