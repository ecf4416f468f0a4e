package entity

import "time"

// Estados de una tarea.
const (
	TaskPendiente = "PENDIENTE"
	TaskResuelta  = "RESUELTA"
)

// Task es una tarea asignada por un supervisor a un reponedor (id de perfil).
type Task struct {
	ID          int64
	ReponedorID int64
	Descripcion string
	FechaVisita time.Time
	Estado      string
	CreadoPor   int64
}

// TaskView fila del listado de tareas con los datos del reponedor.
type TaskView struct {
	ID              int64
	Descripcion     string
	Fecha           time.Time
	Estado          string
	ReponedorID     int64
	Empresa         string
	ReponedorNombre string
}
