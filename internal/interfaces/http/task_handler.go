package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
)

// TaskHandler tareas asignadas por supervisores.
type TaskHandler struct {
	uc *usecase.TaskUseCase
}

func NewTaskHandler(uc *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         supervisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTaskRequest  true  "reponedorId, descripcion, fecha, estado"
// @Success      201   {object}  dto.CreateTaskResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supervisor/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tareas
// @Tags         supervisor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.TaskResponse
// @Router       /api/supervisor/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Marcar tarea como resuelta
// @Tags         supervisor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID tarea"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supervisor/tasks/{id}/resolver [put]
func (h *TaskHandler) Resolve(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	if err := h.uc.Resolve(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Tarea marcada como resuelta"})
}

// Delete godoc
// @Summary      Eliminar tarea
// @Tags         supervisor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID tarea"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supervisor/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Tarea eliminada correctamente"})
}
