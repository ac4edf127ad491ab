package http

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

// Locals keys de la identidad autenticada.
const (
	LocalIdentity = "identity"
)

// credentialVerifier lo implementa *auth.AuthUseCase.
type credentialVerifier interface {
	Verify(ctx context.Context, username, password string) (entity.Identity, error)
}

// BasicAuth autentica cada petición con Authorization: Basic base64(usuario:contraseña)
// y deja la identidad en c.Locals. No hay sesión: cada request verifica de nuevo.
//
//   - 401 MISSING_CREDENTIALS → sin header.
//   - 400 INVALID_AUTH_HEADER → esquema distinto de Basic o codificación inválida.
//   - 401 INVALID_CREDENTIALS → usuario inexistente o contraseña errónea (mismo mensaje).
func BasicAuth(verifier credentialVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="BeanScene"`)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_CREDENTIALS", Message: "Authorization header requerido"})
		}
		username, password, ok := parseBasic(header)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AUTH_HEADER", Message: "formato: Basic base64(usuario:contraseña)"})
		}
		identity, err := verifier.Verify(c.UserContext(), username, password)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="BeanScene"`)
			return respondError(c, err)
		}
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

func parseBasic(header string) (username, password string, ok bool) {
	scheme, encoded, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", false
	}
	return strings.Cut(string(raw), ":")
}

// GetIdentity devuelve la identidad autenticada (después de BasicAuth).
func GetIdentity(c *fiber.Ctx) (entity.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(entity.Identity)
	return id, ok
}

// GetUserID devuelve el id del empleado autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	id, _ := GetIdentity(c)
	return id.ID
}

// GetRole devuelve el rol del empleado autenticado o "".
func GetRole(c *fiber.Ctx) string {
	id, _ := GetIdentity(c)
	return id.Role
}
