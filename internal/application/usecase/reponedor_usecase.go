package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
	"github.com/cultiva/reponedores-api/internal/domain/schedule"
)

// ReponedorPhotosDir subdirectorio de uploads para fotos de perfil.
const ReponedorPhotosDir = "reponedor"

var mesesES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatVigencia formatea una fecha como "02 enero 2006".
func FormatVigencia(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), mesesES[t.Month()-1], t.Year())
}

// QRText contenido codificado en el QR de la credencial.
func QRText(p *entity.ReponedorProfile) string {
	return "Nombre: " + p.Nombre +
		"\nCorreo: " + p.Correo +
		"\nEmpresa: " + p.Empresa +
		"\nServicio: " + p.EmpresaServicio +
		"\nRUT: " + p.RUT
}

// ReponedorUseCase perfiles de reponedor, credencial digital y listado para supervisores.
type ReponedorUseCase struct {
	repo      repository.ReponedorRepository
	users     repository.UserRepository
	files     FileStore
	qr        QRCodeGenerator
	pdf       CredentialPDFGenerator
	validator *validation.Validator
}

// NewReponedorUseCase construye el caso de uso.
func NewReponedorUseCase(
	repo repository.ReponedorRepository,
	users repository.UserRepository,
	files FileStore,
	qr QRCodeGenerator,
	pdf CredentialPDFGenerator,
	v *validation.Validator,
) *ReponedorUseCase {
	return &ReponedorUseCase{repo: repo, users: users, files: files, qr: qr, pdf: pdf, validator: v}
}

// CreateProfile crea el perfil de un usuario existente, con foto opcional.
func (uc *ReponedorUseCase) CreateProfile(ctx context.Context, in dto.CreateReponedorRequest, foto *multipart.FileHeader) (*dto.MessageResponse, error) {
	in.RUT = strings.TrimSpace(in.RUT)
	in.Empresa = strings.TrimSpace(in.Empresa)
	in.EmpresaServicio = strings.TrimSpace(in.EmpresaServicio)
	in.Vigencia = strings.TrimSpace(in.Vigencia)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	vigencia, err := schedule.ParseDate(in.Vigencia)
	if err != nil {
		return nil, domain.NewFieldError("vigencia", err.Error())
	}
	user, err := uc.users.GetByID(ctx, in.UsuarioID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	rep := &entity.Reponedor{
		UsuarioID:       in.UsuarioID,
		RUT:             in.RUT,
		Empresa:         in.Empresa,
		EmpresaServicio: in.EmpresaServicio,
		Vigencia:        &vigencia,
		CreadoEn:        time.Now(),
	}
	var saved []string
	if foto != nil {
		saved, err = uc.files.Save(ctx, ReponedorPhotosDir, in.UsuarioID, []*multipart.FileHeader{foto})
		if err != nil {
			return nil, err
		}
		rep.Foto = &saved[0]
	}
	if err := uc.repo.Create(ctx, rep); err != nil {
		uc.files.Remove(ReponedorPhotosDir, saved...)
		return nil, err
	}
	return &dto.MessageResponse{Message: "Reponedor creado correctamente"}, nil
}

func (uc *ReponedorUseCase) profile(ctx context.Context, userID int64) (*entity.ReponedorProfile, error) {
	p, err := uc.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrReponedorNotFound
	}
	return p, nil
}

// GetProfile perfil del usuario con QR como data URL PNG.
func (uc *ReponedorUseCase) GetProfile(ctx context.Context, userID int64) (*dto.ReponedorProfileResponse, error) {
	p, err := uc.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	png, err := uc.qr.PNG(QRText(p))
	if err != nil {
		return nil, fmt.Errorf("generar qr: %w", err)
	}
	out := &dto.ReponedorProfileResponse{
		ID:              p.ID,
		UsuarioID:       p.UsuarioID,
		Nombre:          p.Nombre,
		Correo:          p.Correo,
		Rol:             p.Rol,
		RUT:             p.RUT,
		Empresa:         p.Empresa,
		EmpresaServicio: p.EmpresaServicio,
		QRDataURL:       "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		Geolocalizacion: p.Geolocalizacion,
		CreadoEn:        p.CreadoEn,
	}
	if p.Vigencia != nil {
		v := FormatVigencia(*p.Vigencia)
		out.Vigencia = &v
	}
	if p.Foto != nil && *p.Foto != "" {
		url := uc.files.PublicPath(ReponedorPhotosDir, *p.Foto)
		out.Foto = &url
	}
	if p.Observaciones != nil {
		out.Observaciones = *p.Observaciones
	}
	return out, nil
}

// CredentialPDF credencial imprimible del usuario.
func (uc *ReponedorUseCase) CredentialPDF(ctx context.Context, userID int64) ([]byte, error) {
	p, err := uc.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	data := CredentialData{Profile: p, QRText: QRText(p)}
	if p.Vigencia != nil {
		data.Vigencia = FormatVigencia(*p.Vigencia)
	}
	return uc.pdf.GenerateCredential(ctx, data)
}

// List reponedores ordenados por nombre.
func (uc *ReponedorUseCase) List(ctx context.Context) ([]dto.ReponedorSummaryResponse, error) {
	rows, err := uc.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReponedorSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReponedorSummaryResponse{
			ID:              r.ID,
			Nombre:          r.Nombre,
			Empresa:         r.Empresa,
			EmpresaServicio: r.EmpresaServicio,
		})
	}
	return out, nil
}
