package usecase

import (
	"context"
	"strings"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
	"github.com/cultiva/reponedores-api/internal/domain/schedule"
)

// TaskUseCase tareas asignadas por supervisores a reponedores.
type TaskUseCase struct {
	repo       repository.TaskRepository
	reponedors repository.ReponedorRepository
	validator  *validation.Validator
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, reponedors repository.ReponedorRepository, v *validation.Validator) *TaskUseCase {
	return &TaskUseCase{repo: repo, reponedors: reponedors, validator: v}
}

// Create crea una tarea PENDIENTE (o con el estado indicado) a nombre de creadorID.
func (uc *TaskUseCase) Create(ctx context.Context, creadorID int64, in dto.CreateTaskRequest) (*dto.CreateTaskResponse, error) {
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	in.Estado = strings.ToUpper(strings.TrimSpace(in.Estado))
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	fecha, err := schedule.ParseDate(in.Fecha)
	if err != nil {
		return nil, domain.NewFieldError("fecha", err.Error())
	}
	rep, err := uc.reponedors.GetByID(ctx, in.ReponedorID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, domain.ErrReponedorNotFound
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.TaskPendiente
	}
	task := &entity.Task{
		ReponedorID: in.ReponedorID,
		Descripcion: in.Descripcion,
		FechaVisita: fecha,
		Estado:      estado,
		CreadoPor:   creadorID,
	}
	if err := uc.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return &dto.CreateTaskResponse{Message: "Tarea creada correctamente", TareaID: task.ID}, nil
}

// List lista las tareas por fecha descendente.
func (uc *TaskUseCase) List(ctx context.Context) ([]dto.TaskResponse, error) {
	rows, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, dto.TaskResponse{
			ID:              t.ID,
			Descripcion:     t.Descripcion,
			Fecha:           t.Fecha.Format(schedule.DateLayout),
			Estado:          t.Estado,
			ReponedorID:     t.ReponedorID,
			Empresa:         t.Empresa,
			ReponedorNombre: t.ReponedorNombre,
		})
	}
	return out, nil
}

// Resolve marca la tarea como RESUELTA.
func (uc *TaskUseCase) Resolve(ctx context.Context, id int64) error {
	return uc.repo.Resolve(ctx, id)
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
