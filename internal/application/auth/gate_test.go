package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

func TestAuthorize(t *testing.T) {
	staff := entity.Identity{ID: "a", Username: "s", Role: entity.RoleStaff}
	mgr := entity.Identity{ID: "b", Username: "m", Role: entity.RoleManager}

	assert.NoError(t, auth.Authorize(staff, ""))
	assert.NoError(t, auth.Authorize(mgr, ""))
	assert.NoError(t, auth.Authorize(mgr, entity.RoleManager))
	assert.NoError(t, auth.Authorize(mgr, entity.RoleStaff))
	assert.ErrorIs(t, auth.Authorize(staff, entity.RoleManager), domain.ErrForbidden)
	assert.ErrorIs(t, auth.Authorize(entity.Identity{}, ""), domain.ErrUnauthorized)
	assert.ErrorIs(t, auth.Authorize(entity.Identity{ID: "c", Role: "Owner"}, ""), domain.ErrUnauthorized)
}
