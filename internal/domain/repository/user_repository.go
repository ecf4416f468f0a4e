package repository

import (
	"context"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get/Find devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// EmailTaken reporta si el correo pertenece a otro usuario distinto de excludeID (0 = ninguno).
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]*entity.User, error)
	// Update aplica el patch; ErrUserNotFound si el id no existe.
	Update(ctx context.Context, id int64, patch entity.UserPatch) error
	// Delete elimina; ErrUserNotFound si no afectó filas.
	Delete(ctx context.Context, id int64) error
}
