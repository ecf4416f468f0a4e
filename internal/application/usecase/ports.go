package usecase

import (
	"context"
	"mime/multipart"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
)

// VisitTxRunner ejecuta fn dentro de una transacción con un VisitRepository atado a ella.
// Si fn devuelve error se hace rollback.
type VisitTxRunner interface {
	RunVisits(ctx context.Context, fn func(visits repository.VisitRepository) error) error
}

// FileStore guarda fotos subidas. Save es todo o nada: si falla un archivo no queda ninguno.
type FileStore interface {
	Save(ctx context.Context, subdir string, userID int64, files []*multipart.FileHeader) ([]string, error)
	Remove(subdir string, names ...string)
	PublicPath(subdir, name string) string
}

// QRCodeGenerator genera la imagen PNG de un código QR.
type QRCodeGenerator interface {
	PNG(content string) ([]byte, error)
}

// CredentialData datos impresos en la credencial PDF del reponedor.
type CredentialData struct {
	Profile  *entity.ReponedorProfile
	Vigencia string
	QRText   string
}

// CredentialPDFGenerator genera la credencial imprimible del reponedor.
type CredentialPDFGenerator interface {
	GenerateCredential(ctx context.Context, data CredentialData) ([]byte, error)
}

// ContactNotifier avisa de un nuevo mensaje de contacto.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, c *entity.Contact) error
}

// VisitExporter serializa el listado de visitas a una planilla.
type VisitExporter interface {
	ExportVisits(ctx context.Context, visits []entity.VisitView) ([]byte, error)
}
