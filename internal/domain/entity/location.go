package entity

import "time"

// Location es un local comercial visitado por reponedores.
type Location struct {
	ID            int64
	NombreEmpresa string
	Comuna        string
	Direccion     string
	Horarios      *string
	CreadoEn      time.Time
}
