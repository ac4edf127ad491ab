package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
	"github.com/jhoicas/beanscene-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_CreateYListOrdenado(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	for _, name := range []string{"Mains", "Drinks", "Desserts"} {
		_, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	list, err := f.categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Desserts", "Drinks", "Mains"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestCategory_NombreDuplicado(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	_, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Mains"})
	require.NoError(t, err)
	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "  Mains "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategory_NombreVacio(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	_, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Borrar un id inexistente es éxito con 0 afectados; repetir el borrado también.
func TestDelete_IdInexistenteEsIdempotente(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Drinks"})
	require.NoError(t, err)

	n, err := f.categories.Delete(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	for i := 0; i < 2; i++ {
		n, err = f.categories.Delete(ctx, cat.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	}

	absent := domain.NewID().Hex()
	n, err = f.items.Delete(ctx, absent)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.staff.Delete(ctx, absent)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDelete_IdMalFormado(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	_, err := f.items.Delete(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ítems
// ──────────────────────────────────────────────────────────────────────────────

func TestItem_ListAgrupadoPorCategoriaYNombre(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	f.mustItem(t, "Steak", "Mains", "32.00")
	f.mustItem(t, "Lemonade", "Drinks", "5.50")
	f.mustItem(t, "Burger", "Mains", "21.00")
	f.mustItem(t, "Coffee", "Drinks", "4.50")

	list, err := f.items.List(ctx)
	require.NoError(t, err)

	got := make([]string, 0, len(list))
	for _, it := range list {
		got = append(got, it.CategoryName+"/"+it.Name)
	}
	assert.Equal(t, []string{"Drinks/Coffee", "Drinks/Lemonade", "Mains/Burger", "Mains/Steak"}, got)
}

func TestItem_ValoresPorDefecto(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	it, err := f.items.Create(context.Background(), dto.ItemRequest{
		Name:         "Water",
		Price:        decimal.Zero,
		CategoryName: "Drinks",
	})
	require.NoError(t, err)

	assert.False(t, it.Available)
	assert.False(t, it.GlutenFree)
	assert.Equal(t, "neither", it.DietType)
	assert.Nil(t, it.ImagePath)
}

func TestItem_PrecioNegativoODietaDesconocida(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	in := itemRequest("Soup", "Starters", "-1")
	_, err := f.items.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = itemRequest("Soup", "Starters", "9")
	in.DietType = "carnivore"
	_, err = f.items.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Update con los mismos valores es NoChange; con un campo distinto es Updated; id inexistente es NotFound.
func TestItem_UpdateTricotomia(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()
	it := f.mustItem(t, "Latte", "Drinks", "5.00")

	same := itemRequest("Latte", "Drinks", "5.0")
	outcome, err := f.items.Update(ctx, it.ID, same)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoChange, outcome)

	changed := itemRequest("Latte", "Drinks", "5.50")
	outcome, err = f.items.Update(ctx, it.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)

	got, err := f.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("5.5")))

	_, err = f.items.Update(ctx, domain.NewID().Hex(), changed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_UpdateSobrescribeTodosLosCampos(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()

	in := itemRequest("Pavlova", "Desserts", "12")
	in.Allergens = "egg"
	in.GlutenFree = true
	it, err := f.items.Create(ctx, in)
	require.NoError(t, err)

	// Campos omitidos en el request quedan con su valor cero, no se conservan.
	outcome, err := f.items.Update(ctx, it.ID, dto.ItemRequest{Name: "Pavlova", CategoryName: "Desserts", Price: decimal.NewFromInt(12)})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)

	got, err := f.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Allergens)
	assert.False(t, got.GlutenFree)
	assert.False(t, got.Available)
	assert.Empty(t, got.Description)
}

func TestItem_GetByIDInexistente(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	_, err := f.items.GetByID(context.Background(), domain.NewID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_SetImage(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	ctx := context.Background()
	it := f.mustItem(t, "Flat White", "Drinks", "4.80")

	png := []byte("\x89PNG\r\n\x1a\nfake")
	got, err := f.items.SetImage(ctx, it.ID, "image/png", int64(len(png)), bytesReader(png))
	require.NoError(t, err)
	require.NotNil(t, got.ImagePath)
	assert.Contains(t, *got.ImagePath, "items/"+it.ID+"/")
	assert.Len(t, f.images.objects, 1)

	stored, err := f.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ImagePath, stored.ImagePath)

	_, err = f.items.SetImage(ctx, it.ID, "image/gif", 10, bytesReader([]byte("GIF89a")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.items.SetImage(ctx, it.ID, "image/jpeg", usecase.MaxImageSize+1, bytesReader(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.items.SetImage(ctx, domain.NewID().Hex(), "image/png", int64(len(png)), bytesReader(png))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_SetImageSinAlmacenConfigurado(t *testing.T) {
	f := newFixture(t, usecase.OrderOptions{})
	items := usecase.NewItemUseCase(f.store.Items(), nil)
	it := f.mustItem(t, "Tea", "Drinks", "4")

	_, err := items.SetImage(context.Background(), it.ID, "image/png", 4, bytesReader([]byte("data")))
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
}
