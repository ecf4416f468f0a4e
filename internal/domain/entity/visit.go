package entity

import "time"

// Estados de una visita agendada y de cada día de su semana.
const (
	VisitNoRealizada = "NO_REALIZADA"
	VisitEnProgreso  = "EN_PROGRESO"
	VisitFinalizada  = "FINALIZADA"
)

// IsValidVisitState reporta si s es uno de los tres estados de visita.
func IsValidVisitState(s string) bool {
	return s == VisitNoRealizada || s == VisitEnProgreso || s == VisitFinalizada
}

// VisitStateRank ordena los estados por avance: NO_REALIZADA < EN_PROGRESO < FINALIZADA.
func VisitStateRank(s string) int {
	switch s {
	case VisitEnProgreso:
		return 1
	case VisitFinalizada:
		return 2
	default:
		return 0
	}
}

// ScheduledVisit es una visita agendada (local × reponedor × fecha/hora de inicio).
// ReponedorID es el id de usuario del reponedor, no el de su perfil.
type ScheduledVisit struct {
	ID              int64
	LocalID         int64
	SupervisorID    int64
	ReponedorID     int64
	Fecha           time.Time
	Hora            string
	Estado          string
	FotoInicio      *string
	FotoFin         *string
	FotosProductos  *string
	Observaciones   *string
	InicioReal      *time.Time
	FinReal         *time.Time
	Geolocalizacion *string
	Ubicacion       *GeoPoint // columnas lat/lng; nil antes del inicio
}

// VisitDay es uno de los 7 registros diarios materializados de una visita.
type VisitDay struct {
	ID       int64
	VisitaID int64
	Dia      time.Time
	Estado   string
}

// VisitStart datos de inicio de una visita en terreno.
type VisitStart struct {
	VisitaID        int64
	UsuarioID       int64
	FotoInicio      string
	Geolocalizacion GeoPoint
	Inicio          time.Time
}

// VisitFinish datos de cierre de una visita en terreno.
type VisitFinish struct {
	VisitaID       int64
	UsuarioID      int64
	FotosProductos []string
	FotoFin        string
	Observaciones  *string
	Fin            time.Time
}

// ReponedorVisitView fila del listado de visitas de un reponedor, con datos del local.
type ReponedorVisitView struct {
	ID              int64
	Fecha           time.Time
	Hora            string
	Estado          string
	InicioReal      *time.Time
	FinReal         *time.Time
	FotoInicio      *string
	FotoFin         *string
	FotosProductos  *string
	Geolocalizacion *string
	Ubicacion       *GeoPoint
	LocalNombre     string
	Direccion       string
	Comuna          string
}

// VisitView fila del listado general de visitas (supervisor/admin).
type VisitView struct {
	ID              int64
	LocalID         int64
	NombreEmpresa   string
	Direccion       string
	ReponedorID     int64
	ReponedorNombre string
	Fecha           time.Time
	Hora            string
	Estado          string
}
