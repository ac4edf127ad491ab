package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
	"github.com/jhoicas/beanscene-api/internal/domain"
)

func staffRequest(first, last, username, role string) dto.CreateStaffRequest {
	return dto.CreateStaffRequest{
		FirstName: first,
		LastName:  last,
		Username:  username,
		Email:     username + "@beanscene.test",
		Password:  "Sup3rSecret!",
		Role:      role,
	}
}

func TestStaff_CreateNoExponeHash(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	created, err := f.staff.Create(ctx, staffRequest("Jo", "Bloggs", "jbloggs", "Manager"))
	require.NoError(t, err)
	assert.Equal(t, "jbloggs", created.Username)

	stored, err := f.store.Staff().FindOne(ctx, map[string]any{"username": "jbloggs"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "Sup3rSecret!", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestStaff_UsernameDuplicado(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	_, err := f.staff.Create(ctx, staffRequest("Jo", "Bloggs", "jbloggs", "Manager"))
	require.NoError(t, err)
	_, err = f.staff.Create(ctx, staffRequest("Joe", "Other", "jbloggs", "Staff"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStaff_RolInvalido(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	_, err := f.staff.Create(context.Background(), staffRequest("Jo", "Bloggs", "jbloggs", "Owner"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStaff_ListPorRolApellidoNombre(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	for _, in := range []dto.CreateStaffRequest{
		staffRequest("Zoe", "Adams", "zadams", "Staff"),
		staffRequest("Amy", "Brown", "abrown", "Manager"),
		staffRequest("Ben", "Adams", "badams", "Staff"),
		staffRequest("Cat", "Avery", "cavery", "Manager"),
	} {
		_, err := f.staff.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := f.staff.List(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(list))
	for _, s := range list {
		got = append(got, s.Username)
	}
	assert.Equal(t, []string{"cavery", "abrown", "badams", "zadams"}, got)
}

func TestStaff_UpdateTricotomia(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()
	created, err := f.staff.Create(ctx, staffRequest("Jo", "Bloggs", "jbloggs", "Staff"))
	require.NoError(t, err)

	same := dto.UpdateStaffRequest{FirstName: "Jo", LastName: "Bloggs", Username: "jbloggs", Email: "jbloggs@beanscene.test", Role: "Staff"}
	outcome, err := f.staff.Update(ctx, created.ID, same)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoChange, outcome)

	promoted := same
	promoted.Role = "Manager"
	outcome, err = f.staff.Update(ctx, created.ID, promoted)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)

	_, err = f.staff.Update(ctx, domain.NewID().Hex(), promoted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStaff_UpdatePasswordPermiteNuevoLogin(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()
	created, err := f.staff.Create(ctx, staffRequest("Jo", "Bloggs", "jbloggs", "Staff"))
	require.NoError(t, err)

	outcome, err := f.staff.UpdatePassword(ctx, created.ID, dto.UpdatePasswordRequest{Password: "An0therSecret"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)

	_, err = f.auth.Verify(ctx, "jbloggs", "Sup3rSecret!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	id, err := f.auth.Verify(ctx, "jbloggs", "An0therSecret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id.ID)

	err = f.staff.SetPasswordByUsername(ctx, "nobody", dto.UpdatePasswordRequest{Password: "whatever1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La validación cuenta caracteres; bcrypt limita bytes. 40 "ñ" son 80 bytes.
func TestStaff_PasswordMultibyteExcedeLimiteDeBcrypt(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	in := staffRequest("Ana", "Núñez", "anunez", "Staff")
	in.Password = strings.Repeat("ñ", 40)
	_, err := f.staff.Create(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := f.staff.Create(ctx, staffRequest("Ana", "Núñez", "anunez", "Staff"))
	require.NoError(t, err)
	_, err = f.staff.UpdatePassword(ctx, created.ID, dto.UpdatePasswordRequest{Password: strings.Repeat("ñ", 40)})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
