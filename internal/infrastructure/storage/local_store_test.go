package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultiva/reponedores-api/internal/domain"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// headers arma un formulario multipart real y devuelve sus FileHeader.
func headers(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	order := make([]string, 0, len(files))
	for name, content := range files {
		part, err := w.CreateFormFile("fotos", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		order = append(order, name)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["fotos"], len(order))
	return form.File["fotos"]
}

func newStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	s := NewLocalStore(dir, "https://api.cultiva.cl/", 1, zerolog.Nop())
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return s, dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSave_UnaImagen(t *testing.T) {
	s, dir := newStore(t)

	names, err := s.Save(context.Background(), "visitas", 7, headers(t, map[string][]byte{"inicio.jpeg": pngBytes(t)}))
	require.NoError(t, err)
	assert.Equal(t, []string{"foto_7_1700000000123.png"}, names, "la extensión sale del contenido real")
	assert.Equal(t, names, listDir(t, filepath.Join(dir, "visitas")), "no quedan temporales")
	assert.Equal(t, "https://api.cultiva.cl/uploads/visitas/foto_7_1700000000123.png", s.PublicPath("visitas", names[0]))
}

func TestSave_VariasImagenesNombresUnicos(t *testing.T) {
	s, _ := newStore(t)

	names, err := s.Save(context.Background(), "visitas", 7, headers(t, map[string][]byte{
		"a.png": pngBytes(t),
		"b.png": pngBytes(t),
	}))
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.NotEqual(t, names[0], names[1])
	assert.Equal(t, "foto_7_1700000000123_1.png", names[0])
}

func TestSave_MismoMilisegundoNoSobrescribe(t *testing.T) {
	s, dir := newStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, "visitas", 7, headers(t, map[string][]byte{"a.png": pngBytes(t)}))
	require.NoError(t, err)
	original, err := os.ReadFile(filepath.Join(dir, "visitas", first[0]))
	require.NoError(t, err)

	second, err := s.Save(ctx, "visitas", 7, headers(t, map[string][]byte{"b.png": pngBytes(t)}))
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0], second[0])
	assert.Regexp(t, `^foto_7_1700000000123_[0-9a-f]{8}\.png$`, second[0])
	assert.ElementsMatch(t, []string{first[0], second[0]}, listDir(t, filepath.Join(dir, "visitas")))

	kept, err := os.ReadFile(filepath.Join(dir, "visitas", first[0]))
	require.NoError(t, err)
	assert.Equal(t, original, kept)
}

func TestSave_TodoONada(t *testing.T) {
	s, dir := newStore(t)

	_, err := s.Save(context.Background(), "visitas", 7, headers(t, map[string][]byte{
		"ok.png":   pngBytes(t),
		"nota.txt": []byte("esto no es una imagen"),
	}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, listDir(t, filepath.Join(dir, "visitas")), "ni temporales ni archivos parciales")
}

func TestSave_ExcedeTamano(t *testing.T) {
	s, _ := newStore(t)
	big := append(pngBytes(t), make([]byte, 2<<20)...)

	_, err := s.Save(context.Background(), "reponedor", 1, headers(t, map[string][]byte{"grande.png": big}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemove(t *testing.T) {
	s, dir := newStore(t)
	names, err := s.Save(context.Background(), "reponedor", 3, headers(t, map[string][]byte{"cara.png": pngBytes(t)}))
	require.NoError(t, err)

	s.Remove("reponedor", names...)
	s.Remove("reponedor", "no-existe.png")
	assert.Empty(t, listDir(t, filepath.Join(dir, "reponedor")))
}

func TestPublicPath_SinBaseURL(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "", 0, zerolog.Nop())
	assert.Equal(t, "/uploads/reponedor/foto.png", s.PublicPath("reponedor", "foto.png"))
}

func TestSave_ErrorIndicaElCampo(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Save(context.Background(), "visitas", 7, headers(t, map[string][]byte{"nota.txt": []byte("hola")}))
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "fotos", verrs[0].Campo)
}
