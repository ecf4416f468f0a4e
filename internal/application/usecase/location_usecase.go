package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para locales.
type LocationUseCase struct {
	repo      repository.LocationRepository
	validator *validation.Validator
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, v *validation.Validator) *LocationUseCase {
	return &LocationUseCase{repo: repo, validator: v}
}

// Create crea un local y devuelve la fila guardada.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.LocationRequest) (*dto.LocationResponse, error) {
	in = trimLocation(in)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	loc := &entity.Location{
		NombreEmpresa: in.NombreEmpresa,
		Comuna:        in.Comuna,
		Direccion:     in.Direccion,
		Horarios:      nonEmpty(in.Horarios),
		CreadoEn:      time.Now(),
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Update reemplaza los datos de un local; ErrLocationNotFound si no existe.
func (uc *LocationUseCase) Update(ctx context.Context, id int64, in dto.LocationRequest) (*dto.LocationResponse, error) {
	in = trimLocation(in)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	loc := &entity.Location{
		ID:            id,
		NombreEmpresa: in.NombreEmpresa,
		Comuna:        in.Comuna,
		Direccion:     in.Direccion,
		Horarios:      nonEmpty(in.Horarios),
	}
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	updated, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrLocationNotFound
	}
	return toLocationResponse(updated), nil
}

// Delete elimina un local.
func (uc *LocationUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List lista locales del más nuevo al más antiguo.
func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	return uc.list(uc.repo.List(ctx))
}

// ListByName lista locales por nombre de empresa (selector del supervisor).
func (uc *LocationUseCase) ListByName(ctx context.Context) ([]dto.LocationResponse, error) {
	return uc.list(uc.repo.ListByName(ctx))
}

func (uc *LocationUseCase) list(locs []*entity.Location, err error) ([]dto.LocationResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

func trimLocation(in dto.LocationRequest) dto.LocationRequest {
	in.NombreEmpresa = strings.TrimSpace(in.NombreEmpresa)
	in.Comuna = strings.TrimSpace(in.Comuna)
	in.Direccion = strings.TrimSpace(in.Direccion)
	return in
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	out := &dto.LocationResponse{
		ID:            l.ID,
		NombreEmpresa: l.NombreEmpresa,
		Comuna:        l.Comuna,
		Direccion:     l.Direccion,
		Horarios:      l.Horarios,
	}
	if !l.CreadoEn.IsZero() {
		creado := l.CreadoEn
		out.CreadoEn = &creado
	}
	return out
}
