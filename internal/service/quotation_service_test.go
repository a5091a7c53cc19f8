package service

import (
	"testing"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type quotationFixture struct {
	db         *gorm.DB
	carts      CartService
	quotations QuotationService
}

func newQuotationFixture(t *testing.T) *quotationFixture {
	t.Helper()
	db := setupTestDB(t)
	productRepo := repository.NewProductRepo(db)
	carts := NewCartService(productRepo)
	quotations := NewQuotationService(
		db, carts,
		repository.NewQuotationRepo(db),
		repository.NewCounterRepo(db),
	)
	return &quotationFixture{db: db, carts: carts, quotations: quotations}
}

func TestCreateQuotationLeavesStockAlone(t *testing.T) {
	f := newQuotationFixture(t)
	p := seedProduct(t, f.db, "Graphics Card", 90000, 3)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	quotation, err := f.quotations.CreateQuotation("u1", CreateQuotationRequest{
		DiscountValue: 5,
		DiscountType:  model.DiscountPercent,
		CustomerName:  "Tech Shop",
	})
	require.NoError(t, err)

	assert.Equal(t, 90000.0, quotation.Subtotal)
	assert.Equal(t, 4500.0, quotation.Discount)
	assert.Equal(t, 85500.0, quotation.Total)

	var got model.Product
	require.NoError(t, f.db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 3, got.Stock)

	// The cart is consumed like a checkout.
	assert.True(t, f.carts.Get("u1").IsEmpty())

	// No customer record is created for a quotation.
	var customers int64
	require.NoError(t, f.db.Model(&model.Customer{}).Count(&customers).Error)
	assert.Equal(t, int64(0), customers)
}

func TestQuotationNumberingIndependentOfInvoices(t *testing.T) {
	f := newQuotationFixture(t)
	p := seedProduct(t, f.db, "RAM Stick", 12000, 10)

	quote := func() *model.Quotation {
		_, err := f.carts.AddLine("u1", p.ID)
		require.NoError(t, err)
		q, err := f.quotations.CreateQuotation("u1", CreateQuotationRequest{
			DiscountType: model.DiscountPercent,
		})
		require.NoError(t, err)
		return q
	}

	assert.Equal(t, "Q101", quote().QuotationNo)
	assert.Equal(t, "Q102", quote().QuotationNo)
}

func TestCreateQuotationEmptyCart(t *testing.T) {
	f := newQuotationFixture(t)
	_, err := f.quotations.CreateQuotation("u1", CreateQuotationRequest{
		DiscountType: model.DiscountPercent,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestQuotationValidityWindow(t *testing.T) {
	f := newQuotationFixture(t)
	p := seedProduct(t, f.db, "PSU", 15000, 2)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	quotation, err := f.quotations.CreateQuotation("u1", CreateQuotationRequest{
		DiscountType: model.DiscountPercent,
	})
	require.NoError(t, err)

	validity := quotation.ValidUntil.Sub(quotation.Date)
	assert.InDelta(t, float64(model.QuotationValidity), float64(validity), float64(time.Second))
}

func TestDeleteQuotationRemovesItems(t *testing.T) {
	f := newQuotationFixture(t)
	p := seedProduct(t, f.db, "Cooler", 4000, 2)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	quotation, err := f.quotations.CreateQuotation("u1", CreateQuotationRequest{
		DiscountType: model.DiscountPercent,
	})
	require.NoError(t, err)

	require.NoError(t, f.quotations.DeleteQuotation(quotation.ID))

	var items int64
	require.NoError(t, f.db.Model(&model.QuotationItem{}).Count(&items).Error)
	assert.Equal(t, int64(0), items)

	assert.ErrorIs(t, f.quotations.DeleteQuotation(quotation.ID), ErrQuotationNotFound)
}
