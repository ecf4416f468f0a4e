package dto

import "time"

// VisitRequest entrada para agendar o reagendar una visita.
// localId y reponedorId se aceptan como número o texto.
type VisitRequest struct {
	LocalID     FlexInt `json:"localId"`
	ReponedorID FlexInt `json:"reponedorId"`
	Hora        string  `json:"hora"`
	Fecha       string  `json:"fecha"`
}

// ScheduleVisitResponse confirmación con el id de la visita creada.
type ScheduleVisitResponse struct {
	Message  string `json:"message"`
	VisitaID int64  `json:"visitaId"`
}

// SetDayStateRequest cambio manual de estado; sin dia se aplica a toda la semana.
type SetDayStateRequest struct {
	Estado string  `json:"estado"`
	Dia    *string `json:"dia"`
}

// WeeklySummaryDay una entrada L..D del resumen semanal.
type WeeklySummaryDay struct {
	Dia    string `json:"dia"`
	Fecha  string `json:"fecha"`
	Estado string `json:"estado"`
}

// VisitResponse fila del listado general de visitas.
type VisitResponse struct {
	ID              int64  `json:"id"`
	LocalID         int64  `json:"local_id"`
	NombreEmpresa   string `json:"nombre_empresa"`
	Direccion       string `json:"direccion"`
	ReponedorID     int64  `json:"reponedor_id"`
	ReponedorNombre string `json:"reponedor_nombre"`
	Fecha           string `json:"fecha"`
	Hora            string `json:"hora"`
	Estado          string `json:"estado"`
}

// ReponedorVisitResponse fila del listado de visitas propias del reponedor.
type ReponedorVisitResponse struct {
	ID              int64      `json:"id"`
	Fecha           string     `json:"fecha"`
	Hora            string     `json:"hora"`
	Estado          string     `json:"estado"`
	InicioReal      *time.Time `json:"inicio_real"`
	FinReal         *time.Time `json:"fin_real"`
	FotoInicio      *string    `json:"foto_inicio"`
	FotoFin         *string    `json:"foto_fin"`
	FotosProductos  []string   `json:"fotos_productos"`
	Geolocalizacion *string    `json:"geolocalizacion"`
	Lat             *float64   `json:"lat"`
	Lng             *float64   `json:"lng"`
	LocalNombre     string     `json:"local_nombre"`
	Direccion       string     `json:"direccion"`
	Comuna          string     `json:"comuna"`
}

// StartVisitResponse confirmación de inicio con la URL pública de la foto.
type StartVisitResponse struct {
	Message    string `json:"message"`
	FotoInicio string `json:"foto_inicio"`
}
