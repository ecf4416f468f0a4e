package repository

import (
	"context"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// TaskRepository define el puerto de persistencia para tareas.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	// List ordena por fecha de visita descendente.
	List(ctx context.Context) ([]entity.TaskView, error)
	// Resolve marca RESUELTA; ErrTaskNotFound si no existe.
	Resolve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
