package postgres

import (
	"context"
	"fmt"

	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	db Querier
}

// NewTaskRepository construye el repositorio de tareas.
func NewTaskRepository(db Querier) *TaskRepo {
	return &TaskRepo{db: db}
}

// Create inserta una tarea; ErrReponedorNotFound si el perfil no existe.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (reponedor_id, descripcion, fecha_visita, estado, creado_por)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(ctx, query, t.ReponedorID, t.Descripcion, t.FechaVisita, t.Estado, t.CreadoPor).Scan(&t.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReponedorNotFound
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// List tareas con los datos del reponedor, por fecha de visita descendente.
func (r *TaskRepo) List(ctx context.Context) ([]entity.TaskView, error) {
	query := `
		SELECT t.id, t.descripcion, t.fecha_visita, t.estado, r.id, r.empresa, u.nombre
		FROM tasks t
		JOIN reponedores r ON r.id = t.reponedor_id
		JOIN usuarios u ON u.id = r.usuario_id
		ORDER BY t.fecha_visita DESC, t.id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var list []entity.TaskView
	for rows.Next() {
		var v entity.TaskView
		if err := rows.Scan(&v.ID, &v.Descripcion, &v.Fecha, &v.Estado, &v.ReponedorID, &v.Empresa, &v.ReponedorNombre); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Resolve marca la tarea como RESUELTA.
func (r *TaskRepo) Resolve(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE tasks SET estado = $2 WHERE id = $1`, id, entity.TaskResuelta)
	if err != nil {
		return fmt.Errorf("resolve task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete elimina una tarea.
func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
