package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cultiva/reponedores-api/internal/application/auth"
	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
)

// UserUseCase administra cuentas (solo ADMIN vía router).
type UserUseCase struct {
	repo      repository.UserRepository
	hasher    auth.PasswordHasher
	validator *validation.Validator
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hasher auth.PasswordHasher, v *validation.Validator) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher, validator: v}
}

// Create valida, verifica correo único, hashea el password y persiste.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Correo = strings.TrimSpace(in.Correo)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	taken, err := uc.repo.EmailTaken(ctx, in.Correo, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Nombre:       in.Nombre,
		Correo:       in.Correo,
		PasswordHash: hash,
		Rol:          entity.NormalizeRole(in.Rol),
		CreadoEn:     time.Now(),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista todas las cuentas sin el hash de password.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario; ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update aplica cambios parciales. Un patch vacío es ErrNothingToUpdate.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) error {
	in.Nombre = trimmed(in.Nombre)
	in.Correo = trimmed(in.Correo)
	if err := uc.validator.Struct(in); err != nil {
		return err
	}
	var patch entity.UserPatch
	if in.Nombre != nil && *in.Nombre != "" {
		patch.Nombre = in.Nombre
	}
	if in.Correo != nil && *in.Correo != "" {
		correo := *in.Correo
		taken, err := uc.repo.EmailTaken(ctx, correo, id)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailAlreadyExists
		}
		patch.Correo = &correo
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return err
		}
		patch.PasswordHash = &hash
	}
	if in.Rol != nil && *in.Rol != "" {
		rol := entity.NormalizeRole(*in.Rol)
		patch.Rol = &rol
	}
	if patch.Empty() {
		return domain.ErrNothingToUpdate
	}
	return uc.repo.Update(ctx, id, patch)
}

// trimmed copia s sin espacios en los extremos; nil se mantiene nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// Delete elimina un usuario; ErrUserNotFound si no existía.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Correo:   u.Correo,
		Rol:      u.Rol,
		CreadoEn: u.CreadoEn,
	}
}
