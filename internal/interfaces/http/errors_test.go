package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultiva/reponedores-api/internal/domain"
)

func failApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
	app.Get("/", func(c *fiber.Ctx) error { return fail(c, err) })
	return app
}

func TestFail_Mapeo(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"credenciales", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Credenciales inválidas"},
		{"prohibido", domain.ErrForbidden, http.StatusForbidden, "Acceso denegado"},
		{"visita no encontrada", domain.ErrVisitNotFound, http.StatusNotFound, "Visita no encontrada"},
		{"envuelto", fmt.Errorf("repo: %w", domain.ErrLocationNotFound), http.StatusNotFound, "Repo: local no encontrado"},
		{"correo duplicado", domain.ErrEmailAlreadyExists, http.StatusBadRequest, "Correo ya registrado"},
		{"conflicto", domain.ErrConflict, http.StatusBadRequest, "El reponedor ya tiene una visita agendada a esa hora"},
		{"sin cambios", domain.ErrNothingToUpdate, http.StatusBadRequest, "No hay datos para actualizar"},
		{"desconocido", errors.New("pg: conexión rechazada"), http.StatusInternalServerError, "Error interno del servidor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := failApp(tc.err).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

// Los errores por campo se devuelven como {errores:[{campo,mensaje}]}.
func TestFail_ValidationErrors(t *testing.T) {
	verr := domain.ValidationErrors{
		{Campo: "hora", Mensaje: "formato HH:MM"},
		{Campo: "fecha", Mensaje: "formato YYYY-MM-DD"},
	}
	resp, err := failApp(verr).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Errores []domain.FieldError `json:"errores"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []domain.FieldError(verr), body.Errores)
}

func TestSentence(t *testing.T) {
	assert.Equal(t, "Ñandú", sentence("ñandú"))
	assert.Equal(t, "", sentence(""))
}
