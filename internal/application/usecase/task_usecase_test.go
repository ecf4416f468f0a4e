package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers(&entity.User{ID: 10, Nombre: "Rosa", Correo: "rosa@cultiva.cl", Rol: entity.RoleReponedor})
	reps := newMemReponedors(users, &entity.Reponedor{ID: 1, UsuarioID: 10})
	tasks := newMemTasks()
	uc := usecase.NewTaskUseCase(tasks, reps, validation.New())

	// Caso 1: validación
	_, err := uc.Create(ctx, 5, dto.CreateTaskRequest{Descripcion: "revisar quiebres"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, 5, dto.CreateTaskRequest{ReponedorID: 1, Descripcion: "x", Fecha: "2024-13-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, 5, dto.CreateTaskRequest{ReponedorID: 1, Descripcion: "x", Fecha: "2024-01-10", Estado: "ABIERTA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: reponedor inexistente
	_, err = uc.Create(ctx, 5, dto.CreateTaskRequest{ReponedorID: 9, Descripcion: "x", Fecha: "2024-01-10"})
	assert.ErrorIs(t, err, domain.ErrReponedorNotFound)

	// Caso 3: alta con estado por defecto
	out, err := uc.Create(ctx, 5, dto.CreateTaskRequest{ReponedorID: 1, Descripcion: "revisar quiebres", Fecha: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskPendiente, tasks.rows[out.TareaID].Estado)
	assert.Equal(t, int64(5), tasks.rows[out.TareaID].CreadoPor)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-01-10", list[0].Fecha)

	// Caso 4: resolver y borrar
	require.NoError(t, uc.Resolve(ctx, out.TareaID))
	assert.Equal(t, entity.TaskResuelta, tasks.rows[out.TareaID].Estado)
	assert.ErrorIs(t, uc.Resolve(ctx, 999), domain.ErrTaskNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 999), domain.ErrTaskNotFound)
	assert.Len(t, tasks.rows, 1)
	require.NoError(t, uc.Delete(ctx, out.TareaID))
	assert.Empty(t, tasks.rows)
}
