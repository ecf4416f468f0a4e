package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// VisitHandler agenda de visitas (supervisor) y ejecución en terreno (reponedor).
type VisitHandler struct {
	uc *usecase.VisitUseCase
}

// NewVisitHandler construye el handler de visitas.
func NewVisitHandler(uc *usecase.VisitUseCase) *VisitHandler {
	return &VisitHandler{uc: uc}
}

// ─── Supervisor ──────────────────────────────────────────────────────────────

// Schedule godoc
// @Summary      Agendar visita
// @Description  Crea la visita y sus 7 días de seguimiento en una transacción.
// @Tags         supervisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.VisitRequest  true  "localId, reponedorId, fecha, hora"
// @Success      201   {object}  dto.ScheduleVisitResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supervisor/visitas [post]
func (h *VisitHandler) Schedule(c *fiber.Ctx) error {
	var in dto.VisitRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	out, err := h.uc.Schedule(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reschedule godoc
// @Summary      Reagendar visita
// @Description  Reemplaza los 7 días; los estados previos se descartan.
// @Tags         supervisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int               true  "ID visita"
// @Param        body  body  dto.VisitRequest  true  "localId, reponedorId, fecha, hora"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supervisor/visitas/{id} [put]
func (h *VisitHandler) Reschedule(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	var in dto.VisitRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	if err := h.uc.Reschedule(c.UserContext(), id, in); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Visita reagendada correctamente"})
}

// Cancel godoc
// @Summary      Cancelar visita
// @Tags         supervisor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID visita"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supervisor/visitas/{id} [delete]
func (h *VisitHandler) Cancel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	if err := h.uc.Cancel(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Visita eliminada correctamente"})
}

// List godoc
// @Summary      Listar visitas
// @Tags         supervisor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.VisitResponse
// @Router       /api/supervisor/visitas [get]
func (h *VisitHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar visitas a Excel
// @Tags         supervisor
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /api/supervisor/visitas/export.xlsx [get]
func (h *VisitHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.ExportAll(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="visitas.xlsx"`)
	return c.Send(data)
}

// WeeklySummary godoc
// @Summary      Resumen semanal de un local
// @Description  7 entradas L..D desde el lunes de la semana indicada.
// @Tags         supervisor
// @Produce      json
// @Security     BearerAuth
// @Param        localId  query  int     true  "ID local"
// @Param        week     query  string  true  "Cualquier fecha de la semana (YYYY-MM-DD)"
// @Success      200  {array}   dto.WeeklySummaryDay
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/supervisor/visitas/resumen [get]
func (h *VisitHandler) WeeklySummary(c *fiber.Ctx) error {
	// localId inválido queda en 0 y lo rechaza el caso de uso
	localID, _ := strconv.ParseInt(strings.TrimSpace(c.Query("localId")), 10, 64)
	out, err := h.uc.WeeklySummary(c.UserContext(), localID, c.Query("week"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetDayState godoc
// @Summary      Cambiar estado de los días de una visita
// @Tags         supervisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        visitaId  path  int                     true  "ID visita"
// @Param        body      body  dto.SetDayStateRequest  true  "estado y dia opcional"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supervisor/visitas/{visitaId}/estado [put]
func (h *VisitHandler) SetDayState(c *fiber.Ctx) error {
	id, ok := paramID(c, "visitaId")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	var in dto.SetDayStateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	if err := h.uc.SetDayState(c.UserContext(), id, in); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Estado actualizado correctamente"})
}

// ─── Reponedor ───────────────────────────────────────────────────────────────

// Mine godoc
// @Summary      Visitas del reponedor autenticado
// @Tags         reponedor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ReponedorVisitResponse
// @Router       /api/reponedor/visitas [get]
func (h *VisitHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.ListForReponedor(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar visita
// @Tags         reponedor
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      int     true  "ID visita"
// @Param        foto_inicio  formData  file    true  "Foto de llegada"
// @Param        lat          formData  string  true  "Latitud"
// @Param        lng          formData  string  true  "Longitud"
// @Success      200  {object}  dto.StartVisitResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reponedor/visitas/{id}/start [post]
func (h *VisitHandler) Start(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	out, err := h.uc.Start(c.UserContext(), id, GetUserID(c), usecase.StartVisitInput{
		Foto: formFile(c, "foto_inicio"),
		Lat:  c.FormValue("lat"),
		Lng:  c.FormValue("lng"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Finish godoc
// @Summary      Finalizar visita
// @Tags         reponedor
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      int     true   "ID visita"
// @Param        fotos_productos  formData  file    true   "Fotos de productos (1 a 50)"
// @Param        foto_fin         formData  file    false  "Foto final (o referencia en texto)"
// @Param        observaciones    formData  string  false  "Observaciones"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reponedor/visitas/{id}/end [post]
func (h *VisitHandler) Finish(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	in := usecase.FinishVisitInput{
		FotoFin:    formFile(c, "foto_fin"),
		FotoFinRef: c.FormValue("foto_fin"),
	}
	if form, err := c.MultipartForm(); err == nil {
		in.FotosProductos = form.File["fotos_productos"]
	}
	if obs := c.FormValue("observaciones"); obs != "" {
		in.Observaciones = &obs
	}
	if err := h.uc.Finish(c.UserContext(), id, GetUserID(c), in); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Visita finalizada correctamente"})
}
