package dto

// CreateTaskRequest entrada para crear una tarea. ReponedorID es el id del perfil de reponedor.
type CreateTaskRequest struct {
	ReponedorID int64  `json:"reponedorId" validate:"required,gt=0"`
	Descripcion string `json:"descripcion" validate:"required"`
	Fecha       string `json:"fecha" validate:"required"`
	Estado      string `json:"estado" validate:"omitempty,oneof=PENDIENTE RESUELTA"`
}

// CreateTaskResponse confirmación con el id creado.
type CreateTaskResponse struct {
	Message string `json:"message"`
	TareaID int64  `json:"tareaId"`
}

// TaskResponse fila del listado de tareas.
type TaskResponse struct {
	ID              int64  `json:"id"`
	Descripcion     string `json:"descripcion"`
	Fecha           string `json:"fecha"`
	Estado          string `json:"estado"`
	ReponedorID     int64  `json:"reponedor_id"`
	Empresa         string `json:"empresa"`
	ReponedorNombre string `json:"reponedor_nombre"`
}
