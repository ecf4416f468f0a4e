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

func strPtr(s string) *string { return &s }

func newUserUC() (*usecase.UserUseCase, *memUsers) {
	repo := newMemUsers()
	return usecase.NewUserUseCase(repo, plainHasher{}, validation.New()), repo
}

func TestUserCreate(t *testing.T) {
	uc, repo := newUserUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateUserRequest{Nombre: "Ana", Correo: " ana@cultiva.cl ", Password: "secreta", Rol: "supervisor"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupervisor, out.Rol)
	assert.Equal(t, "ana@cultiva.cl", out.Correo)

	stored, _ := repo.GetByID(ctx, out.ID)
	assert.Equal(t, "hash:secreta", stored.PasswordHash, "el password se guarda hasheado")
}

func TestUserCreate_CorreoDuplicadoNoCreaFila(t *testing.T) {
	uc, repo := newUserUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateUserRequest{Nombre: "Ana", Correo: "ana@cultiva.cl", Password: "secreta", Rol: "ADMIN"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Nombre: "Otra Ana", Correo: "ana@cultiva.cl", Password: "secreta", Rol: "ADMIN"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	all, _ := repo.List(ctx)
	assert.Len(t, all, 1)
}

func TestUserCreate_Validaciones(t *testing.T) {
	uc, _ := newUserUC()

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{Nombre: "A", Correo: "no-es-correo", Password: "123", Rol: "GERENTE"})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	campos := map[string]bool{}
	for _, fe := range verrs {
		campos[fe.Campo] = true
	}
	assert.Equal(t, map[string]bool{"nombre": true, "correo": true, "password": true, "rol": true}, campos)

	// Caso 2: nombre de solo espacios no cuenta como dos caracteres
	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Nombre: "   ", Correo: "ana@cultiva.cl", Password: "secreta", Rol: "ADMIN"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "nombre", verrs[0].Campo)
}

func TestUserUpdate(t *testing.T) {
	uc, repo := newUserUC()
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateUserRequest{Nombre: "Ana", Correo: "ana@cultiva.cl", Password: "secreta", Rol: "ADMIN"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateUserRequest{Nombre: "Beto", Correo: "beto@cultiva.cl", Password: "secreta", Rol: "REPONEDOR"})
	require.NoError(t, err)

	// Caso 1: patch vacío
	assert.ErrorIs(t, uc.Update(ctx, a.ID, dto.UpdateUserRequest{}), domain.ErrNothingToUpdate)

	// Caso 2: correo de otro usuario
	assert.ErrorIs(t, uc.Update(ctx, a.ID, dto.UpdateUserRequest{Correo: strPtr("beto@cultiva.cl")}), domain.ErrEmailAlreadyExists)

	// Caso 3: su propio correo no choca consigo mismo
	assert.NoError(t, uc.Update(ctx, a.ID, dto.UpdateUserRequest{Correo: strPtr("ana@cultiva.cl")}))

	// Caso 4: password y rol
	require.NoError(t, uc.Update(ctx, b.ID, dto.UpdateUserRequest{Password: strPtr("nuevaclave"), Rol: strPtr("supervisor")}))
	stored, _ := repo.GetByID(ctx, b.ID)
	assert.Equal(t, "hash:nuevaclave", stored.PasswordHash)
	assert.Equal(t, entity.RoleSupervisor, stored.Rol)
	assert.Equal(t, "Beto", stored.Nombre)

	// Caso 5: nombre en blanco no pisa el nombre guardado
	assert.ErrorIs(t, uc.Update(ctx, b.ID, dto.UpdateUserRequest{Nombre: strPtr("   ")}), domain.ErrNothingToUpdate)
	stored, _ = repo.GetByID(ctx, b.ID)
	assert.Equal(t, "Beto", stored.Nombre)

	// Caso 5b: nombre de un carácter rodeado de espacios
	var verrs domain.ValidationErrors
	require.ErrorAs(t, uc.Update(ctx, b.ID, dto.UpdateUserRequest{Nombre: strPtr("  B  ")}), &verrs)
	assert.Equal(t, "nombre", verrs[0].Campo)

	// Caso 5c: correo con espacios se guarda recortado
	require.NoError(t, uc.Update(ctx, b.ID, dto.UpdateUserRequest{Correo: strPtr("  beto2@cultiva.cl ")}))
	stored, _ = repo.GetByID(ctx, b.ID)
	assert.Equal(t, "beto2@cultiva.cl", stored.Correo)

	// Caso 6: id inexistente
	assert.ErrorIs(t, uc.Update(ctx, 999, dto.UpdateUserRequest{Nombre: strPtr("Nadie")}), domain.ErrUserNotFound)
}

func TestUserGetYDelete(t *testing.T) {
	uc, repo := newUserUC()
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateUserRequest{Nombre: "Ana", Correo: "ana@cultiva.cl", Password: "secreta", Rol: "ADMIN"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nombre)

	_, err = uc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.True(t, domain.IsNotFound(err))

	assert.ErrorIs(t, uc.Delete(ctx, 999), domain.ErrUserNotFound)
	all, _ := repo.List(ctx)
	assert.Len(t, all, 1, "borrar un id inexistente no toca el resto")

	require.NoError(t, uc.Delete(ctx, a.ID))
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
