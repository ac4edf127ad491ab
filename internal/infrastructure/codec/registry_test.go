package codec_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/codec"
)

func TestDecimal_SeGuardaComoDecimal128(t *testing.T) {
	item := entity.Item{ID: primitive.NewObjectID(), Name: "Flat White", Price: decimal.RequireFromString("4.50")}

	raw, err := codec.Marshal(&item)
	require.NoError(t, err)

	price := bson.Raw(raw).Lookup("price")
	d128, ok := price.Decimal128OK()
	require.True(t, ok, "price debe persistirse como Decimal128")
	assert.Equal(t, "4.5", d128.String())

	var back entity.Item
	require.NoError(t, codec.Unmarshal(raw, &back))
	assert.True(t, back.Price.Equal(item.Price))
	assert.Equal(t, item.ID, back.ID)
}

func TestDecimal_AceptaDoubleLegado(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"_id": primitive.NewObjectID(), "price": 12.25})
	require.NoError(t, err)

	var item entity.Item
	require.NoError(t, codec.Unmarshal(raw, &item))
	assert.Equal(t, "12.25", item.Price.String())
}

func TestExtJSON_IdaYVuelta(t *testing.T) {
	img := "items/abc.png"
	item := entity.Item{
		ID:           primitive.NewObjectID(),
		Name:         "Latte",
		ImagePath:    &img,
		Price:        decimal.RequireFromString("5"),
		DietType:     entity.DietVegetarian,
		CategoryName: "Drinks",
	}
	js, err := codec.ToExtJSON(&item)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"$oid"`)
	assert.Contains(t, string(js), `"$numberDecimal"`)

	var back entity.Item
	require.NoError(t, codec.FromExtJSON(js, &back))
	assert.Equal(t, item.ID, back.ID)
	require.NotNil(t, back.ImagePath)
	assert.Equal(t, img, *back.ImagePath)
	assert.True(t, back.Price.Equal(item.Price))
}
