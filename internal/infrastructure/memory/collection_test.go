package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/memory"
)

func TestUpdateByID_ConteosComoMongo(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()
	item := &entity.Item{ID: primitive.NewObjectID(), Name: "Scone", Price: decimal.RequireFromString("3.5"), CategoryName: "Bakery"}
	require.NoError(t, items.InsertOne(ctx, item))

	res, err := items.UpdateByID(ctx, item.ID, repository.Fields{entity.ItemFieldName: "Scone"})
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateResult{Matched: 1, Modified: 0}, res, "mismo valor: coincide sin modificar")

	res, err = items.UpdateByID(ctx, item.ID, repository.Fields{entity.ItemFieldPrice: decimal.RequireFromString("3.50")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Modified, "3.50 y 3.5 son el mismo precio")

	res, err = items.UpdateByID(ctx, item.ID, repository.Fields{entity.ItemFieldName: "Cheese Scone"})
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateResult{Matched: 1, Modified: 1}, res)

	res, err = items.UpdateByID(ctx, primitive.NewObjectID(), repository.Fields{entity.ItemFieldName: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Matched)

	got, err := items.FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cheese Scone", got.Name)
}

func TestInsertOne_UsernameUnico(t *testing.T) {
	ctx := context.Background()
	staff := memory.NewStore().Staff()
	require.NoError(t, staff.InsertOne(ctx, &entity.Staff{ID: primitive.NewObjectID(), Username: "ana", Role: entity.RoleStaff}))

	err := staff.InsertOne(ctx, &entity.Staff{ID: primitive.NewObjectID(), Username: "ana", Role: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestFind_OrdenMultiCampo(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()
	for _, it := range []struct{ cat, name string }{
		{"Mains", "Risotto"}, {"Drinks", "Tea"}, {"Mains", "Burger"}, {"Drinks", "Coffee"},
	} {
		require.NoError(t, items.InsertOne(ctx, &entity.Item{ID: primitive.NewObjectID(), Name: it.name, CategoryName: it.cat}))
	}

	list, err := items.Find(ctx, nil, repository.Asc(entity.ItemFieldCategoryName), repository.Asc(entity.ItemFieldName))
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, it := range list {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Coffee", "Tea", "Burger", "Risotto"}, names)
}

func TestDeleteByID_Idempotente(t *testing.T) {
	ctx := context.Background()
	cats := memory.NewStore().Categories()
	cat := &entity.Category{ID: primitive.NewObjectID(), Name: "Desserts"}
	require.NoError(t, cats.InsertOne(ctx, cat))

	n, err := cats.DeleteByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = cats.DeleteByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestContextoCancelado_EsNoDisponible(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := memory.NewStore().Orders().Find(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
