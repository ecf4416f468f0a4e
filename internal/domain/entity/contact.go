package entity

import "time"

// Contact es un mensaje del formulario de contacto. Inmutable una vez creado.
type Contact struct {
	ID              int64
	Nombre          string
	ApellidoPaterno string
	ApellidoMaterno string
	Correo          string
	Telefono        *string
	Mensaje         string
	FechaCreacion   time.Time
}
