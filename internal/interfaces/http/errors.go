package http

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/domain"
)

// fail traduce errores de dominio a respuestas HTTP. Los desconocidos se devuelven a Fiber
// para que ErrorHandler los registre y responda 500.
func fail(c *fiber.Ctx, err error) error {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errores: verrs})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return jsonError(c, fiber.StatusUnauthorized, err)
	case errors.Is(err, domain.ErrUnauthorized):
		return jsonError(c, fiber.StatusUnauthorized, err)
	case errors.Is(err, domain.ErrForbidden):
		return jsonError(c, fiber.StatusForbidden, err)
	case domain.IsNotFound(err):
		return jsonError(c, fiber.StatusNotFound, err)
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNothingToUpdate),
		errors.Is(err, domain.ErrInvalidInput):
		return jsonError(c, fiber.StatusBadRequest, err)
	}
	return err
}

func jsonError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: sentence(err.Error())})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}

// sentence pone en mayúscula la primera letra del mensaje.
func sentence(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ErrorHandler manejador global de Fiber: rutas inexistentes, errores de Fiber y errores no mapeados.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code == fiber.StatusNotFound {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Ruta no encontrada"})
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message})
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error interno del servidor"})
	}
}
