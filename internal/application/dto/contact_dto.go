package dto

import "time"

// ContactRequest entrada del formulario de contacto.
type ContactRequest struct {
	Nombre          string  `json:"nombre" validate:"required,min=2"`
	ApellidoPaterno string  `json:"apellido_paterno" validate:"required,min=2"`
	ApellidoMaterno string  `json:"apellido_materno" validate:"required,min=2"`
	Correo          string  `json:"correo" validate:"required,email"`
	Telefono        *string `json:"telefono"`
	Mensaje         string  `json:"mensaje" validate:"required,min=5"`
}

// ContactResponse salida de un mensaje de contacto.
type ContactResponse struct {
	ID              int64     `json:"id"`
	Nombre          string    `json:"nombre"`
	ApellidoPaterno string    `json:"apellido_paterno"`
	ApellidoMaterno string    `json:"apellido_materno"`
	Correo          string    `json:"correo"`
	Telefono        *string   `json:"telefono"`
	Mensaje         string    `json:"mensaje"`
	FechaCreacion   time.Time `json:"fecha_creacion"`
}
