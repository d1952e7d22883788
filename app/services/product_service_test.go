package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kicksup/kicksup/app/events"
	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/pkg/result"
)

func newProduct(code string) services.ProductRequest {
	return services.ProductRequest{
		Code: code, Name: "Trail Runner", Description: "Grip for wet rock",
		Size: models.Size10, Color: models.ColorGray,
		Price: decimal.RequireFromString("199900.50"), Stock: 4,
	}
}

func TestProductList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.catalog.List(ctx, repositories.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Data, 10)

	black, err := f.catalog.List(ctx, repositories.ProductFilter{SearchTerm: "classic", Color: mo.Some(models.ColorBlack)})
	require.NoError(t, err)
	require.Len(t, black.Data, 1)
	assert.Equal(t, "PU-SUEDE-001", black.Data[0].Code)
	assert.Equal(t, "Black", black.Data[0].ColorDisplay)
	assert.Equal(t, "10", black.Data[0].SizeDisplay)
	assert.True(t, black.Data[0].IsAvailable)
}

func TestProductCreateAndDuplicateCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.catalog.Create(ctx, newProduct("TR-001"))
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.NotEqual(t, uuid.Nil, res.Data.ID)
	assert.True(t, decimal.RequireFromString("199900.50").Equal(res.Data.Price))

	got, err := f.catalog.GetByID(ctx, res.Data.ID)
	require.NoError(t, err)
	require.True(t, got.OK)
	assert.Equal(t, "TR-001", got.Data.Code)

	dup, err := f.catalog.Create(ctx, newProduct("NK-AIR-001"))
	require.NoError(t, err)
	assert.Equal(t, result.Validation, dup.Kind)
	assert.Equal(t, services.MsgCodeTaken, dup.Message)
}

func TestProductCreateRejectsInvalidFields(t *testing.T) {
	f := newFixture(t)
	req := newProduct("BAD-1")
	req.Price = decimal.NewFromInt(-1)
	req.Size = models.Size(12)

	res, err := f.catalog.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, result.Validation, res.Kind)
	assert.Len(t, res.Errors, 2)
}

func TestProductGetMissing(t *testing.T) {
	f := newFixture(t)
	res, err := f.catalog.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, result.NotFound, res.Kind)
}

func TestProductUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	air := f.product(t, "NK-AIR-001")

	req := newProduct("NK-AIR-001")
	req.Name = "Nike Air Max 90 Retro"
	req.Stock = 0
	res, err := f.catalog.Update(ctx, air.ID, req)
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "Nike Air Max 90 Retro", res.Data.Name)
	assert.False(t, res.Data.IsAvailable)

	clash, err := f.catalog.Update(ctx, air.ID, newProduct("AD-ULTRA-001"))
	require.NoError(t, err)
	assert.Equal(t, result.Validation, clash.Kind)
	assert.Equal(t, services.MsgCodeTakenByOther, clash.Message)

	missing, err := f.catalog.Update(ctx, uuid.New(), newProduct("ZZ-1"))
	require.NoError(t, err)
	assert.Equal(t, result.NotFound, missing.Kind)
}

func TestProductDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stan := f.product(t, "AD-STAN-001")
	res, err := f.catalog.Delete(ctx, stan.ID)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Contains(t, f.rec.names(), events.NameProductDeleted)

	again, err := f.catalog.Delete(ctx, stan.ID)
	require.NoError(t, err)
	assert.Equal(t, result.NotFound, again.Kind)

	vans := f.product(t, "VN-OLD-001")
	cliente := f.user(t, "cliente")
	placed, err := f.ordering.Create(ctx, cliente.ID, services.CreateOrderRequest{
		DeliveryAddress: "Carrera 50",
		Items:           []services.OrderLineRequest{{ProductID: vans.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.True(t, placed.OK)

	blocked, err := f.catalog.Delete(ctx, vans.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Conflict, blocked.Kind)
	assert.Equal(t, 400, blocked.Status())
}
