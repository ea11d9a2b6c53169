package service_test

import (
	"context"
	"testing"

	"github.com/obispoem/pdv-simple/internal/dto"
	"github.com/obispoem/pdv-simple/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	repo := newMemProductRepo()
	svc := service.NewProductService(repo)

	desc := "Arabica beans"
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:        "Coffee 500g",
		Description: &desc,
		Price:       decimal.NewFromFloat(10.50),
		Stock:       20,
	})

	require.NoError(t, err)
	assert.Equal(t, "Coffee 500g", resp.Name)
	assert.Equal(t, "10.5", resp.Price.String())
	assert.Equal(t, 20, resp.Stock)
	assert.True(t, resp.Active)
}

func TestCreateProductInvalidCategoryID(t *testing.T) {
	svc := service.NewProductService(newMemProductRepo())

	bad := "not-a-uuid"
	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Tea",
		Price:      decimal.NewFromInt(5),
		CategoryID: &bad,
	})

	var invalid *service.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestUpdateProductPartial(t *testing.T) {
	repo := newMemProductRepo()
	id := repo.add("Coffee 500g", 10.50, 20, true)
	svc := service.NewProductService(repo)

	newPrice := decimal.NewFromFloat(11.75)
	resp, err := svc.Update(context.Background(), id, dto.UpdateProductRequest{
		Price: &newPrice,
	})

	require.NoError(t, err)
	// Only the price changes; everything else is preserved
	assert.Equal(t, "11.75", resp.Price.String())
	assert.Equal(t, "Coffee 500g", resp.Name)
	assert.Equal(t, 20, resp.Stock)
}

func TestDeactivateProduct(t *testing.T) {
	repo := newMemProductRepo()
	id := repo.add("Coffee 500g", 10.50, 20, true)
	svc := service.NewProductService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), id))
	assert.False(t, repo.products[id].Active)

	// Deactivated products drop out of the default listing
	list, err := svc.List(context.Background(), dto.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Data)

	// But remain reachable with active=all
	list, err = svc.List(context.Background(), dto.ProductFilter{Active: "all"})
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestDeactivateProductNotFound(t *testing.T) {
	svc := service.NewProductService(newMemProductRepo())

	err := svc.Deactivate(context.Background(), uuid.New())

	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
