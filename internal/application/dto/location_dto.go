package dto

import "time"

// LocationRequest entrada para crear o editar un local.
type LocationRequest struct {
	NombreEmpresa string  `json:"nombre_empresa" validate:"required"`
	Comuna        string  `json:"comuna" validate:"required"`
	Direccion     string  `json:"direccion" validate:"required"`
	Horarios      *string `json:"horarios"`
}

// LocationResponse salida de un local.
type LocationResponse struct {
	ID            int64      `json:"id"`
	NombreEmpresa string     `json:"nombre_empresa"`
	Comuna        string     `json:"comuna"`
	Direccion     string     `json:"direccion"`
	Horarios      *string    `json:"horarios"`
	CreadoEn      *time.Time `json:"creado_en,omitempty"`
}
