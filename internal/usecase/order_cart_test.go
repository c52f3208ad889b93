package usecase

import (
	"testing"

	"marketplace/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stock(id string, price string, qty int64) model.Product {
	return model.Product{ID: id, Name: "product-" + id, Price: decimal.RequireFromString(price), Quantity: qty, Version: 4}
}

func TestBuildOrderCart_ReservesRequestedQuantity(t *testing.T) {
	stocks := []model.Product{stock("P1", "10.00", 5)}

	cart, reserved, err := BuildOrderCart([]OrderProductInput{{ID: "P1", Quantity: 3}}, stocks)
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, "P1", cart[0].ProductID)
	assert.True(t, decimal.RequireFromString("10.00").Equal(cart[0].Price))
	assert.Equal(t, int64(3), cart[0].Quantity)

	require.Len(t, reserved, 1)
	assert.Equal(t, int64(2), reserved[0].Quantity)
	//versionは読み取り時のまま（書き戻しの比較に使う）
	assert.Equal(t, int64(4), reserved[0].Version)

	//呼び出し元の在庫は書き換えない
	assert.Equal(t, int64(5), stocks[0].Quantity)
}

func TestBuildOrderCart_ExactQuantityIsAllowed(t *testing.T) {
	cart, reserved, err := BuildOrderCart(
		[]OrderProductInput{{ID: "P1", Quantity: 5}},
		[]model.Product{stock("P1", "1.50", 5)},
	)
	require.NoError(t, err)
	assert.Len(t, cart, 1)
	assert.Equal(t, int64(0), reserved[0].Quantity)
}

func TestBuildOrderCart_InsufficientStock(t *testing.T) {
	cart, reserved, err := BuildOrderCart(
		[]OrderProductInput{{ID: "P1", Quantity: 10}},
		[]model.Product{stock("P1", "10.00", 5)},
	)

	ise, ok := AsInsufficientStockError(err)
	require.True(t, ok, "expected InsufficientStockError, got %v", err)
	assert.Equal(t, "P1", ise.ProductID)
	assert.Equal(t, int64(10), ise.Requested)
	assert.Equal(t, int64(5), ise.Available)
	assert.Nil(t, cart)
	assert.Nil(t, reserved)
}

func TestBuildOrderCart_SecondItemInsufficient_ReturnsNothing(t *testing.T) {
	stocks := []model.Product{stock("P1", "10.00", 5), stock("P2", "3.00", 1)}

	cart, reserved, err := BuildOrderCart(
		[]OrderProductInput{{ID: "P1", Quantity: 2}, {ID: "P2", Quantity: 2}},
		stocks,
	)

	_, ok := AsInsufficientStockError(err)
	require.True(t, ok)
	assert.Nil(t, cart)
	assert.Nil(t, reserved)
	assert.Equal(t, int64(5), stocks[0].Quantity)
}

func TestBuildOrderCart_EmptyStock(t *testing.T) {
	_, _, err := BuildOrderCart([]OrderProductInput{{ID: "P1", Quantity: 1}}, nil)

	nf, ok := AsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Products not found", nf.Message)
}

func TestBuildOrderCart_EmptyRequestAndStock(t *testing.T) {
	cart, reserved, err := BuildOrderCart(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, cart)
	assert.Empty(t, reserved)
}

func TestBuildOrderCart_UnrequestedStockIsKeptUnchanged(t *testing.T) {
	stocks := []model.Product{stock("P1", "10.00", 5), stock("P2", "2.00", 7)}

	cart, reserved, err := BuildOrderCart([]OrderProductInput{{ID: "P2", Quantity: 2}}, stocks)
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, "P2", cart[0].ProductID)

	require.Len(t, reserved, 2)
	assert.Equal(t, int64(5), reserved[0].Quantity)
	assert.Equal(t, int64(5), reserved[1].Quantity)
}

func TestBuildOrderCart_UnmatchedRequestIsDropped(t *testing.T) {
	cart, _, err := BuildOrderCart(
		[]OrderProductInput{{ID: "P1", Quantity: 1}, {ID: "missing", Quantity: 1}},
		[]model.Product{stock("P1", "10.00", 5)},
	)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "P1", cart[0].ProductID)
}

func TestBuildOrderCart_FollowsStockOrder(t *testing.T) {
	cart, _, err := BuildOrderCart(
		[]OrderProductInput{{ID: "P2", Quantity: 1}, {ID: "P1", Quantity: 1}},
		[]model.Product{stock("P1", "1.00", 5), stock("P2", "2.00", 5)},
	)
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.Equal(t, "P1", cart[0].ProductID)
	assert.Equal(t, "P2", cart[1].ProductID)
}

func TestBuildOrderCart_DuplicateRequestUsesFirst(t *testing.T) {
	cart, reserved, err := BuildOrderCart(
		[]OrderProductInput{{ID: "P1", Quantity: 2}, {ID: "P1", Quantity: 4}},
		[]model.Product{stock("P1", "1.00", 5)},
	)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, int64(2), cart[0].Quantity)
	assert.Equal(t, int64(3), reserved[0].Quantity)
}

func TestDistinctProductIDs(t *testing.T) {
	ids := distinctProductIDs([]OrderProductInput{
		{ID: "P2"}, {ID: "P1"}, {ID: "P2"}, {ID: "P3"},
	})
	assert.Equal(t, []string{"P2", "P1", "P3"}, ids)
}
