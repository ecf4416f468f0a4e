package entity

import "time"

// Reponedor es el perfil de trabajador de terreno asociado 1:1 a un User.
type Reponedor struct {
	ID              int64
	UsuarioID       int64
	RUT             string
	Empresa         string
	EmpresaServicio string
	Vigencia        *time.Time
	Foto            *string
	Geolocalizacion *string
	Observaciones   *string
	CreadoEn        time.Time
}

// ReponedorProfile es el perfil unido a los datos de su cuenta.
type ReponedorProfile struct {
	Reponedor
	Nombre string
	Correo string
	Rol    string
}

// ReponedorSummary fila del listado de reponedores para supervisores.
type ReponedorSummary struct {
	ID              int64
	Nombre          string
	Empresa         string
	EmpresaServicio string
}
