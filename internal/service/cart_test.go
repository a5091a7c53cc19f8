package service

import (
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalsPercent(t *testing.T) {
	totals := ComputeTotals(1000, 10, model.DiscountPercent)
	assert.Equal(t, 1000.0, totals.Subtotal)
	assert.Equal(t, 100.0, totals.Discount)
	assert.Equal(t, 900.0, totals.Total)
}

func TestComputeTotalsFixed(t *testing.T) {
	totals := ComputeTotals(1000, 250, model.DiscountFixed)
	assert.Equal(t, 250.0, totals.Discount)
	assert.Equal(t, 750.0, totals.Total)
}

func TestComputeTotalsFixedCappedAtSubtotal(t *testing.T) {
	// A fixed discount larger than the subtotal clamps to it; the total
	// never goes negative.
	totals := ComputeTotals(1000, 1500, model.DiscountFixed)
	assert.Equal(t, 1000.0, totals.Discount)
	assert.Equal(t, 0.0, totals.Total)
}

func TestComputeTotalsZeroDiscount(t *testing.T) {
	totals := ComputeTotals(500, 0, model.DiscountPercent)
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 500.0, totals.Total)
}

func TestCartAddLineSnapshotsPrice(t *testing.T) {
	db := setupTestDB(t)
	productRepo := repository.NewProductRepo(db)
	carts := NewCartService(productRepo)

	p := seedProduct(t, db, "USB Cable", 450, 10)

	cart, err := carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 450.0, cart.Lines[0].Price)
	assert.Equal(t, 1, cart.Lines[0].Qty)

	// Changing the product price later must not touch the drafted line.
	p.SellPrice = 999
	require.NoError(t, db.Save(p).Error)
	cart = carts.Get("u1")
	assert.Equal(t, 450.0, cart.Lines[0].Price)
}

func TestCartAddLineIncrementsUpToStock(t *testing.T) {
	db := setupTestDB(t)
	productRepo := repository.NewProductRepo(db)
	carts := NewCartService(productRepo)

	p := seedProduct(t, db, "Mouse", 1200, 2)

	_, err := carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	_, err = carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	cart, err := carts.AddLine("u1", p.ID)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, cart.Lines[0].Qty)
}

func TestCartAddLineOutOfStockIsNoop(t *testing.T) {
	db := setupTestDB(t)
	productRepo := repository.NewProductRepo(db)
	carts := NewCartService(productRepo)

	p := seedProduct(t, db, "Keyboard", 3500, 0)

	cart, err := carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartSetLineQtyRemovesAtZero(t *testing.T) {
	db := setupTestDB(t)
	productRepo := repository.NewProductRepo(db)
	carts := NewCartService(productRepo)

	p := seedProduct(t, db, "Charger", 800, 5)

	_, err := carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	cart, err := carts.SetLineQty("u1", p.ID, -1)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartSetLinePriceRejectsNegative(t *testing.T) {
	db := setupTestDB(t)
	productRepo := repository.NewProductRepo(db)
	carts := NewCartService(productRepo)

	p := seedProduct(t, db, "Adapter", 600, 5)

	_, err := carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	_, err = carts.SetLinePrice("u1", p.ID, -10)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	cart, err := carts.SetLinePrice("u1", p.ID, 550)
	require.NoError(t, err)
	assert.Equal(t, 550.0, cart.Lines[0].Price)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	db := setupTestDB(t)
	productRepo := repository.NewProductRepo(db)
	carts := NewCartService(productRepo)

	p := seedProduct(t, db, "Speaker", 2500, 5)

	_, err := carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	assert.True(t, carts.Get("u2").IsEmpty())
	assert.False(t, carts.Get("u1").IsEmpty())
}
