// Package pdf genera la credencial imprimible del reponedor con Maroto v2.
//
// Layout de la tarjeta (parte superior de una hoja A4):
//
//	┌──────────────────────────────────────────────┐
//	│  CREDENCIAL REPONEDOR        Empresa         │
//	│  ──────────────────────────────────────────  │
//	│  Foto │ Nombre / RUT / Servicio / Vigencia   │
//	│  ──────────────────────────────────────────  │
//	│  QR   │ Correo + leyenda                     │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cultiva/reponedores-api/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 47, Green: 125, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.CredentialPDFGenerator = (*CredentialGenerator)(nil)

// CredentialGenerator implementa usecase.CredentialPDFGenerator.
type CredentialGenerator struct {
	photoDir string // donde están las fotos de perfil; vacío = sin foto
}

// NewCredentialGenerator construye el generador. photoDir es el directorio de fotos de perfil.
func NewCredentialGenerator(photoDir string) *CredentialGenerator {
	return &CredentialGenerator{photoDir: photoDir}
}

// GenerateCredential genera el PDF y devuelve sus bytes.
func (g *CredentialGenerator) GenerateCredential(_ context.Context, data usecase.CredentialData) ([]byte, error) {
	p := data.Profile
	if p == nil {
		return nil, fmt.Errorf("pdf: credencial sin perfil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Credencial "+p.Nombre, true).
		WithAuthor(p.Empresa, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(p.Empresa))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.6}))
	m.AddRows(identityRow(data, g.photoPath(data)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(qrRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar credencial: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(empresa string) core.Row {
	return row.New(14).Add(
		col.New(7).Add(text.New("CREDENCIAL REPONEDOR", props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 3,
		})),
		col.New(5).Add(text.New(empresa, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 4,
		})),
	)
}

func identityRow(data usecase.CredentialData, photo string) core.Row {
	p := data.Profile
	info := col.New(8).Add(
		text.New(p.Nombre, props.Text{Style: fontstyle.Bold, Size: 13, Top: 2, Left: 3}),
		text.New("RUT: "+p.RUT, props.Text{Size: 10, Top: 11, Left: 3}),
		text.New("Servicio: "+p.EmpresaServicio, props.Text{Size: 10, Top: 18, Left: 3}),
		text.New("Vigencia: "+nonEmpty(data.Vigencia, "sin fecha"), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 25, Left: 3, Color: colorPrimary,
		}),
	)
	var left core.Col
	if photo != "" {
		left = col.New(4).Add(image.NewFromFile(photo, props.Rect{Percent: 90, Center: true}))
	} else {
		left = col.New(4).Add(text.New("SIN FOTO", props.Text{
			Size: 9, Align: align.Center, Top: 15, Color: colorGray,
		}))
	}
	return row.New(40).Add(left, info)
}

func qrRow(data usecase.CredentialData) core.Row {
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(data.QRText, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New(data.Profile.Correo, props.Text{Size: 9, Top: 4, Left: 3, Color: colorGray}),
			text.New("Presente esta credencial al ingresar al local.\nEl código QR identifica al reponedor y su empresa.", props.Text{
				Size: 8, Top: 14, Left: 3, Color: colorGray,
			}),
		),
	)
}

// photoPath devuelve la ruta de la foto si existe y es jpg o png (formatos que maroto embebe).
func (g *CredentialGenerator) photoPath(data usecase.CredentialData) string {
	p := data.Profile
	if g.photoDir == "" || p.Foto == nil || *p.Foto == "" {
		return ""
	}
	path := filepath.Join(g.photoDir, filepath.Base(*p.Foto))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
	default:
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
