package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
)

// LocationHandler maneja los locales (puntos de venta).
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler de locales.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear local
// @Tags         locales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.LocationRequest  true  "nombre_empresa, comuna, direccion, horarios"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/locales [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar locales
// @Tags         locales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locales [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListByName godoc
// @Summary      Listar locales ordenados por nombre (supervisor)
// @Tags         supervisor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/supervisor/locales [get]
func (h *LocationHandler) ListByName(c *fiber.Ctx) error {
	out, err := h.uc.ListByName(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar local
// @Tags         locales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                  true  "ID local"
// @Param        body  body  dto.LocationRequest  true  "datos del local"
// @Success      200   {object}  dto.LocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locales/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar local
// @Description  Elimina también sus visitas y días asociados.
// @Tags         locales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID local"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locales/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "ID inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Local eliminado correctamente"})
}
