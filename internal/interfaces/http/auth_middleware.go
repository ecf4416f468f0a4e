package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/domain/policy"
	"github.com/cultiva/reponedores-api/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "rol"
	LocalNombre = "nombre"
)

// AuthMiddleware valida el Bearer Token JWT y deja id, rol y nombre en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Formato de token inválido, use Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token requerido"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalRole, id.Rol)
		c.Locals(LocalNombre, id.Nombre)
		return c.Next()
	}
}

// RequirePolicy corta con 403 si el rol del token no está permitido por p.
// Debe ir después de AuthMiddleware; sin rol en el token responde 401.
func RequirePolicy(p policy.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRole(c)
		if rol == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token sin rol"})
		}
		if !p.Allows(rol) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: p.DeniedMessage()})
		}
		return c.Next()
	}
}

// GetUserID devuelve el id de usuario del token (0 si no hay).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetNombre devuelve el nombre del usuario del token.
func GetNombre(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalNombre).(string)
	return s
}
