// Package storage guarda en disco las fotos subidas por multipart.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/domain"
)

var _ usecase.FileStore = (*LocalStore)(nil)

// PublicPrefix ruta HTTP bajo la que se sirven los archivos.
const PublicPrefix = "/uploads"

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/heic", "image/heif"}

// LocalStore escribe en baseDir/<subdir>/foto_<usuario>_<millis><ext>.
// Cada archivo pasa primero por un temporal, se valida su tipo real y luego se enlaza
// con su nombre final sin reemplazar archivos existentes.
type LocalStore struct {
	baseDir       string
	publicBaseURL string
	maxBytes      int64
	log           zerolog.Logger
	now           func() time.Time
}

// NewLocalStore construye el store. maxFileMB <= 0 deja el límite en 10 MB.
func NewLocalStore(baseDir, publicBaseURL string, maxFileMB int, log zerolog.Logger) *LocalStore {
	if maxFileMB <= 0 {
		maxFileMB = 10
	}
	return &LocalStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxBytes:      int64(maxFileMB) << 20,
		log:           log,
		now:           time.Now,
	}
}

// BaseDir directorio raíz servido como estático.
func (s *LocalStore) BaseDir() string { return s.baseDir }

type staged struct {
	tmp string
	ext string
}

// Save guarda todos los archivos o ninguno.
func (s *LocalStore) Save(ctx context.Context, subdir string, userID int64, files []*multipart.FileHeader) ([]string, error) {
	dir := filepath.Join(s.baseDir, filepath.Clean("/"+subdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}

	var temps []staged
	cleanupTemps := func() {
		for _, st := range temps {
			_ = os.Remove(st.tmp)
		}
	}
	for _, fh := range files {
		if err := ctx.Err(); err != nil {
			cleanupTemps()
			return nil, err
		}
		st, err := s.stage(dir, fh)
		if err != nil {
			cleanupTemps()
			return nil, err
		}
		temps = append(temps, st)
	}

	stamp := s.now().UnixMilli()
	names := make([]string, 0, len(temps))
	for i, st := range temps {
		base := fmt.Sprintf("foto_%d_%d", userID, stamp)
		if len(temps) > 1 {
			base = fmt.Sprintf("foto_%d_%d_%d", userID, stamp, i+1)
		}
		name, err := place(dir, st, base)
		if err != nil {
			cleanupTemps()
			s.Remove(subdir, names...)
			return nil, fmt.Errorf("guardar archivo: %w", err)
		}
		names = append(names, name)
	}
	return names, nil
}

// place mueve el temporal a dir/<base><ext> sin pisar un archivo existente;
// si el nombre está tomado agrega un sufijo aleatorio.
func place(dir string, st staged, base string) (string, error) {
	name := base + st.ext
	for attempt := 0; attempt < 3; attempt++ {
		err := os.Link(st.tmp, filepath.Join(dir, name))
		if err == nil {
			_ = os.Remove(st.tmp)
			return name, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
		name = base + "_" + uuid.NewString()[:8] + st.ext
	}
	return "", fmt.Errorf("nombre en uso: %s%s", base, st.ext)
}

// stage copia el archivo a un temporal y comprueba que sea una imagen.
func (s *LocalStore) stage(dir string, fh *multipart.FileHeader) (staged, error) {
	if fh.Size > s.maxBytes {
		return staged{}, domain.NewFieldError(fieldName(fh), fmt.Sprintf("el archivo supera %d MB", s.maxBytes>>20))
	}
	src, err := fh.Open()
	if err != nil {
		return staged{}, fmt.Errorf("abrir upload: %w", err)
	}
	defer src.Close()

	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	dst, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return staged{}, fmt.Errorf("crear temporal: %w", err)
	}
	n, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return staged{}, fmt.Errorf("copiar upload: %w", err)
	}
	if n > s.maxBytes {
		_ = os.Remove(tmp)
		return staged{}, domain.NewFieldError(fieldName(fh), fmt.Sprintf("el archivo supera %d MB", s.maxBytes>>20))
	}

	mt, err := mimetype.DetectFile(tmp)
	if err != nil {
		_ = os.Remove(tmp)
		return staged{}, fmt.Errorf("detectar tipo: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedTypes...) {
		_ = os.Remove(tmp)
		return staged{}, domain.NewFieldError(fieldName(fh), "solo se permiten imágenes (jpg, png, webp, gif, heic)")
	}
	return staged{tmp: tmp, ext: mt.Extension()}, nil
}

// Remove borra archivos ya guardados; los errores solo se registran.
func (s *LocalStore) Remove(subdir string, names ...string) {
	dir := filepath.Join(s.baseDir, filepath.Clean("/"+subdir))
	for _, name := range names {
		if name == "" {
			continue
		}
		p := filepath.Join(dir, filepath.Base(name))
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("archivo", p).Msg("no se pudo borrar upload")
		}
	}
}

// PublicPath URL (o ruta relativa si no hay PUBLIC_BASE_URL) con la que se sirve el archivo.
func (s *LocalStore) PublicPath(subdir, name string) string {
	return s.publicBaseURL + path.Join(PublicPrefix, subdir, name)
}

// fieldName nombre del campo del formulario al que pertenece el archivo.
func fieldName(fh *multipart.FileHeader) string {
	if _, params, err := mime.ParseMediaType(fh.Header.Get("Content-Disposition")); err == nil && params["name"] != "" {
		return params["name"]
	}
	return "archivo"
}
