package repository

import (
	"context"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para locales.
type LocationRepository interface {
	Create(ctx context.Context, loc *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	// List ordena por fecha de creación descendente.
	List(ctx context.Context) ([]*entity.Location, error)
	// ListByName ordena por nombre de empresa ascendente.
	ListByName(ctx context.Context) ([]*entity.Location, error)
	Update(ctx context.Context, loc *entity.Location) error
	Delete(ctx context.Context, id int64) error
}
