package auth

import (
	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

// rank jerarquía de roles: Manager incluye los permisos de Staff.
var rank = map[string]int{
	entity.RoleStaff:   1,
	entity.RoleManager: 2,
}

// Authorize compuerta de acceso. required vacío exige solo autenticación.
// Identidad vacía o con rol desconocido es ErrUnauthorized; rol insuficiente es ErrForbidden.
func Authorize(id entity.Identity, required string) error {
	have, ok := rank[id.Role]
	if id.ID == "" || !ok {
		return domain.ErrUnauthorized
	}
	if required == "" {
		return nil
	}
	if have < rank[required] {
		return domain.ErrForbidden
	}
	return nil
}
