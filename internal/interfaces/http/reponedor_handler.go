package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
)

// ReponedorHandler perfil, credencial y alta de reponedores.
type ReponedorHandler struct {
	uc *usecase.ReponedorUseCase
}

// NewReponedorHandler construye el handler de reponedores.
func NewReponedorHandler(uc *usecase.ReponedorUseCase) *ReponedorHandler {
	return &ReponedorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear perfil de reponedor
// @Tags         reponedor
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        usuario_id        formData  int     true   "ID usuario"
// @Param        rut               formData  string  true   "RUT"
// @Param        empresa           formData  string  true   "Empresa"
// @Param        empresa_servicio  formData  string  true   "Empresa de servicio"
// @Param        vigencia          formData  string  true   "Vigencia (YYYY-MM-DD)"
// @Param        foto              formData  file    false  "Foto de credencial"
// @Success      201  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reponedor [post]
func (h *ReponedorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReponedorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Formulario inválido")
	}
	out, err := h.uc.CreateProfile(c.UserContext(), in, formFile(c, "foto"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Profile godoc
// @Summary      Perfil del reponedor autenticado con QR
// @Tags         reponedor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ReponedorProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reponedor/profile [get]
func (h *ReponedorHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Credential godoc
// @Summary      Credencial PDF del reponedor autenticado
// @Tags         reponedor
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reponedor/profile/credencial.pdf [get]
func (h *ReponedorHandler) Credential(c *fiber.Ctx) error {
	pdf, err := h.uc.CredentialPDF(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="credencial.pdf"`)
	return c.Send(pdf)
}

// List godoc
// @Summary      Listar reponedores
// @Tags         supervisor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ReponedorSummaryResponse
// @Router       /api/supervisor/reponedores [get]
func (h *ReponedorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// formFile devuelve el archivo del campo o nil si no vino.
func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}
