// Package export genera planillas XLSX con excelize.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/schedule"
)

var _ usecase.VisitExporter = (*ExcelExporter)(nil)

// SheetName hoja con el listado de visitas.
const SheetName = "Visitas"

var headers = []string{"ID", "Fecha", "Hora", "Local", "Dirección", "Reponedor", "Estado"}

// ExcelExporter exporta el listado general de visitas.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ExportVisits devuelve el libro XLSX con una fila por visita.
func (e *ExcelExporter) ExportVisits(ctx context.Context, visits []entity.VisitView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2F7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, h := range headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, c, h)
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetCellStyle(SheetName, "A1", last+"1", headerStyle)
	_ = f.SetColWidth(SheetName, "A", "C", 12)
	_ = f.SetColWidth(SheetName, "D", "F", 28)
	_ = f.SetColWidth(SheetName, "G", "G", 16)

	for i, v := range visits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := []any{v.ID, v.Fecha.Format(schedule.DateLayout), v.Hora, v.NombreEmpresa, v.Direccion, v.ReponedorNombre, v.Estado}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, start, &row); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
	}
	if len(visits) > 0 {
		_ = f.AutoFilter(SheetName, "A1:"+last+fmt.Sprint(len(visits)+1), nil)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
