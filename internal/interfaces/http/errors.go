package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

// classify traduce la taxonomía de dominio a status HTTP, código y mensaje para el cliente.
// Los errores no previstos nunca exponen su detalle.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return fiber.StatusBadRequest, "INVALID_ID", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS", domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", domain.ErrDuplicate.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION", err.Error()
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "almacén de datos no disponible, intente más tarde"
	case errors.Is(err, domain.ErrFeatureDisabled):
		return fiber.StatusNotImplemented, "NOT_CONFIGURED", domain.ErrFeatureDisabled.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno"
	}
}

// respondError escribe el ErrorResponse y registra del lado servidor los fallos 5xx.
func respondError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	switch {
	case status == fiber.StatusInternalServerError:
		requestLogger(c).Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("error interno")
	case status == fiber.StatusServiceUnavailable:
		requestLogger(c).Warn().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("almacén no disponible")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// NewErrorHandler manejador de errores de Fiber (rutas inexistentes, cuerpo demasiado grande, pánicos recuperados).
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
		}
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "INVALID_BODY"
	default:
		return "HTTP_ERROR"
	}
}

func mutation(result, message string, affected int64) dto.MutationResponse {
	return dto.MutationResponse{Result: result, Message: message, Affected: affected}
}

// updateResponse mapea el outcome de una actualización a la respuesta.
func updateResponse(c *fiber.Ctx, outcome domain.UpdateOutcome) error {
	if outcome == domain.OutcomeNoChange {
		return c.JSON(mutation(dto.ResultNoChange, "sin cambios: los valores ya eran iguales", 0))
	}
	return c.JSON(mutation(dto.ResultUpdated, "actualizado", 1))
}

// deleteResponse delete idempotente: 0 afectados sigue siendo éxito.
func deleteResponse(c *fiber.Ctx, deleted int64) error {
	if deleted == 0 {
		return c.JSON(mutation(dto.ResultDeleted, "no existía; nada que eliminar", 0))
	}
	return c.JSON(mutation(dto.ResultDeleted, "eliminado", deleted))
}
