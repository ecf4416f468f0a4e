package usecase_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

type fakePDF struct{ last usecase.CredentialData }

func (p *fakePDF) GenerateCredential(_ context.Context, data usecase.CredentialData) ([]byte, error) {
	p.last = data
	return []byte("%PDF"), nil
}

func newReponedorUC() (*usecase.ReponedorUseCase, *memReponedors, *fakeFiles, *fakeQR, *fakePDF) {
	users := newMemUsers(&entity.User{ID: 10, Nombre: "Rosa Pérez", Correo: "rosa@cultiva.cl", Rol: entity.RoleReponedor})
	reps := newMemReponedors(users)
	files := &fakeFiles{}
	qr := &fakeQR{}
	pdf := &fakePDF{}
	return usecase.NewReponedorUseCase(reps, users, files, qr, pdf, validation.New()), reps, files, qr, pdf
}

func validProfile() dto.CreateReponedorRequest {
	return dto.CreateReponedorRequest{UsuarioID: 10, RUT: "12.345.678-9", Empresa: "Cultiva", EmpresaServicio: "Reposición", Vigencia: "2025-01-02"}
}

func TestFormatVigencia(t *testing.T) {
	assert.Equal(t, "02 enero 2025", usecase.FormatVigencia(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 diciembre 2024", usecase.FormatVigencia(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()
	uc, reps, files, _, _ := newReponedorUC()

	// Caso 1: faltan campos
	_, err := uc.CreateProfile(ctx, dto.CreateReponedorRequest{UsuarioID: 10}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: usuario inexistente
	in := validProfile()
	in.UsuarioID = 99
	_, err = uc.CreateProfile(ctx, in, nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Caso 3: alta con foto
	out, err := uc.CreateProfile(ctx, validProfile(), fileHeader("cara.png"))
	require.NoError(t, err)
	assert.Equal(t, "Reponedor creado correctamente", out.Message)
	require.Len(t, reps.rows, 1)
	for _, r := range reps.rows {
		require.NotNil(t, r.Foto)
		assert.Equal(t, files.saved[0], *r.Foto)
	}
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	uc, _, _, qr, pdf := newReponedorUC()

	_, err := uc.GetProfile(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrReponedorNotFound)

	_, err = uc.CreateProfile(ctx, validProfile(), fileHeader("cara.png"))
	require.NoError(t, err)

	out, err := uc.GetProfile(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Rosa Pérez", out.Nombre)
	assert.Equal(t, "02 enero 2025", *out.Vigencia)
	assert.Equal(t, "/uploads/reponedor/foto_10_1.jpg", *out.Foto)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("png")), out.QRDataURL)
	assert.True(t, strings.HasPrefix(qr.last, "Nombre: Rosa Pérez\nCorreo: rosa@cultiva.cl"))
	assert.Contains(t, qr.last, "RUT: 12.345.678-9")

	data, err := uc.CredentialPDF(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, "02 enero 2025", pdf.last.Vigencia)
	assert.Equal(t, qr.last, pdf.last.QRText)
}

func TestListReponedores(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _, _ := newReponedorUC()
	_, err := uc.CreateProfile(ctx, validProfile(), nil)
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rosa Pérez", list[0].Nombre)
	assert.Equal(t, "Reposición", list[0].EmpresaServicio)
}
