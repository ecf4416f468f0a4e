package pdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

func profile(foto *string) *entity.ReponedorProfile {
	return &entity.ReponedorProfile{
		Reponedor: entity.Reponedor{
			ID: 1, UsuarioID: 10, RUT: "12.345.678-9", Empresa: "Cultiva",
			EmpresaServicio: "Reposición", Foto: foto, CreadoEn: time.Now(),
		},
		Nombre: "Rosa Pérez",
		Correo: "rosa@cultiva.cl",
		Rol:    entity.RoleReponedor,
	}
}

func TestGenerateCredential(t *testing.T) {
	g := NewCredentialGenerator("")

	out, err := g.GenerateCredential(context.Background(), usecase.CredentialData{
		Profile:  profile(nil),
		Vigencia: "02 enero 2025",
		QRText:   "Nombre: Rosa Pérez",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateCredential_SinPerfil(t *testing.T) {
	_, err := NewCredentialGenerator("").GenerateCredential(context.Background(), usecase.CredentialData{})
	assert.Error(t, err)
}

func TestPhotoPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foto_10_1.png"), []byte("x"), 0o644))
	g := NewCredentialGenerator(dir)

	existing := "foto_10_1.png"
	missing := "foto_10_2.png"
	webp := "foto_10_1.webp"
	traversal := "../../etc/foto_10_1.png"

	assert.Equal(t, filepath.Join(dir, existing), g.photoPath(usecase.CredentialData{Profile: profile(&existing)}))
	assert.Empty(t, g.photoPath(usecase.CredentialData{Profile: profile(&missing)}))
	assert.Empty(t, g.photoPath(usecase.CredentialData{Profile: profile(&webp)}))
	assert.Equal(t, filepath.Join(dir, existing), g.photoPath(usecase.CredentialData{Profile: profile(&traversal)}), "solo se usa el nombre base")
	assert.Empty(t, g.photoPath(usecase.CredentialData{Profile: profile(nil)}))
}
