package repository

import (
	"context"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// ReponedorRepository define el puerto de persistencia para perfiles de reponedor.
type ReponedorRepository interface {
	Create(ctx context.Context, r *entity.Reponedor) error
	GetByID(ctx context.Context, id int64) (*entity.Reponedor, error)
	// FindProfileByUserID devuelve el perfil más reciente del usuario junto a su cuenta.
	FindProfileByUserID(ctx context.Context, userID int64) (*entity.ReponedorProfile, error)
	// ListSummaries ordena por nombre del usuario.
	ListSummaries(ctx context.Context) ([]entity.ReponedorSummary, error)
}
