package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
)

// ContactHandler formulario público de contacto.
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar mensaje de contacto
// @Tags         contactos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "datos de contacto"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/contactos [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	if err := h.uc.Submit(c.UserContext(), in); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Mensaje enviado correctamente"})
}

// List godoc
// @Summary      Listar mensajes de contacto
// @Tags         contactos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ContactResponse
// @Router       /api/contactos [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
