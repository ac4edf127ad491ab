package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Se envuelven con %w y se comparan con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrInvalidCredentials = errors.New("usuario o contraseña inválidos")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrUnavailable        = errors.New("almacén de datos no disponible")
	ErrFeatureDisabled    = errors.New("funcionalidad no configurada")
)

// ErrInvalidID identificador mal formado; es un caso particular de ErrInvalidInput.
var ErrInvalidID = fmt.Errorf("%w: identificador mal formado", ErrInvalidInput)
