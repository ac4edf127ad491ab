package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/application/dto"
)

// RequireRole devuelve un middleware que exige alguno de los roles indicados.
// Debe usarse DESPUÉS de BasicAuth (necesita la identidad en Locals).
//
// Comportamiento:
//   - 401 MISSING_ROLE → no hay identidad o no tiene rol.
//   - 403 FORBIDDEN    → el rol no alcanza (Manager cubre los permisos de Staff).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok || identity.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "identidad sin rol asignado",
			})
		}
		for _, role := range roles {
			if auth.Authorize(identity, role) == nil {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "se requiere rol " + strings.Join(roles, " o "),
		})
	}
}
