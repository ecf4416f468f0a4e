package dto

import "time"

// CreateReponedorRequest campos de formulario para crear un perfil de reponedor.
type CreateReponedorRequest struct {
	UsuarioID       int64  `form:"usuario_id" json:"usuario_id" validate:"required,gt=0"`
	RUT             string `form:"rut" json:"rut" validate:"required"`
	Empresa         string `form:"empresa" json:"empresa" validate:"required"`
	EmpresaServicio string `form:"empresa_servicio" json:"empresa_servicio" validate:"required"`
	Vigencia        string `form:"vigencia" json:"vigencia" validate:"required"`
}

// ReponedorProfileResponse perfil con QR para la credencial digital.
type ReponedorProfileResponse struct {
	ID              int64     `json:"id"`
	UsuarioID       int64     `json:"usuario_id"`
	Nombre          string    `json:"nombre"`
	Correo          string    `json:"correo"`
	Rol             string    `json:"rol"`
	RUT             string    `json:"rut"`
	Empresa         string    `json:"empresa"`
	EmpresaServicio string    `json:"empresa_servicio"`
	Vigencia        *string   `json:"vigencia"`
	Foto            *string   `json:"foto"`
	QRDataURL       string    `json:"qrDataURL"`
	Geolocalizacion *string   `json:"geolocalizacion"`
	Observaciones   string    `json:"observaciones"`
	CreadoEn        time.Time `json:"creado_en"`
}

// ReponedorSummaryResponse fila del listado de reponedores para supervisores.
type ReponedorSummaryResponse struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	Empresa         string `json:"empresa"`
	EmpresaServicio string `json:"empresa_servicio"`
}
