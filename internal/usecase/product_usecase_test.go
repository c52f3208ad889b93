package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"marketplace/internal/domain/model"
	"marketplace/internal/infra/memory"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductUsecase_CreateProduct(t *testing.T) {
	uc := usecase.NewProductUsecase(memory.NewStore().Products(), quietLogger())

	p, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:     " Keyboard ",
		Price:    decimal.RequireFromString("49.999"),
		Quantity: 7,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Keyboard", p.Name)
	assert.Equal(t, "50.00", p.Price.StringFixed(2))
	assert.Equal(t, int64(7), p.Quantity)
}

func TestProductUsecase_CreateProduct_NameTaken(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUsecase(memory.NewStore().Products(), quietLogger())

	_, err := uc.CreateProduct(ctx, usecase.CreateProductInput{Name: "Mouse", Price: decimal.NewFromInt(5), Quantity: 1})
	require.NoError(t, err)

	_, err = uc.CreateProduct(ctx, usecase.CreateProductInput{Name: "Mouse", Price: decimal.NewFromInt(6), Quantity: 2})
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "There is already one product with this name", he.Message)
}

func TestProductUsecase_CreateProduct_InvalidInput(t *testing.T) {
	uc := usecase.NewProductUsecase(memory.NewStore().Products(), quietLogger())

	cases := map[string]usecase.CreateProductInput{
		"empty name":        {Name: "", Price: decimal.NewFromInt(1), Quantity: 1},
		"negative price":    {Name: "A", Price: decimal.NewFromInt(-1), Quantity: 1},
		"negative quantity": {Name: "A", Price: decimal.NewFromInt(1), Quantity: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateProduct(context.Background(), in)
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
}

func TestProductUsecase_CreateProduct_ZeroStockAllowed(t *testing.T) {
	uc := usecase.NewProductUsecase(memory.NewStore().Products(), quietLogger())

	p, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Soon", Price: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity)
}

func TestProductUsecase_CreateProduct_RaceOnUniqueIndex(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByName", mock.Anything, "Mouse").Return(model.Product{}, repo.ErrNotFound)
	products.On("Create", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrDuplicate)

	uc := usecase.NewProductUsecase(products, quietLogger())
	_, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Mouse", Price: decimal.NewFromInt(1)})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "There is already one product with this name", he.Message)
	products.AssertExpectations(t)
}
