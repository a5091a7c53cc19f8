package service

import (
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type saleFixture struct {
	db    *gorm.DB
	carts CartService
	sales SaleService
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	db := setupTestDB(t)
	productRepo := repository.NewProductRepo(db)
	carts := NewCartService(productRepo)
	sales := NewSaleService(
		db, carts, productRepo,
		repository.NewInvoiceRepo(db),
		repository.NewCustomerRepo(db),
		repository.NewCounterRepo(db),
		nil,
	)
	return &saleFixture{db: db, carts: carts, sales: sales}
}

func (f *saleFixture) stockOf(t *testing.T, name string) int {
	t.Helper()
	var p model.Product
	require.NoError(t, f.db.Where("name = ?", name).First(&p).Error)
	return p.Stock
}

func TestCompleteSaleDeductsStockAndClearsCart(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Phone Case", 500, 10)

	for i := 0; i < 3; i++ {
		_, err := f.carts.AddLine("u1", p.ID)
		require.NoError(t, err)
	}

	invoice, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  1500,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, invoice.Total)
	assert.Equal(t, 7, f.stockOf(t, "Phone Case"))
	assert.True(t, f.carts.Get("u1").IsEmpty())
	require.NotNil(t, invoice.PaidAmount)
	assert.Equal(t, 1500.0, *invoice.PaidAmount)
}

func TestCompleteSaleInvoiceNumberingFromSeed(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Screen Guard", 300, 20)

	checkout := func() *model.Invoice {
		_, err := f.carts.AddLine("u1", p.ID)
		require.NoError(t, err)
		inv, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
			DiscountType:  model.DiscountPercent,
			PaymentMethod: model.PayCash,
			CashTendered:  300,
		})
		require.NoError(t, err)
		return inv
	}

	assert.Equal(t, "1001", checkout().InvoiceNo)
	assert.Equal(t, "1002", checkout().InvoiceNo)
	assert.Equal(t, "1003", checkout().InvoiceNo)
}

func TestCompleteSaleEmptyCart(t *testing.T) {
	f := newSaleFixture(t)
	_, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCompleteSaleInsufficientCash(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Power Bank", 4500, 5)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	_, err = f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  4000,
	})
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	// Failed checkout leaves cart and stock untouched.
	assert.False(t, f.carts.Get("u1").IsEmpty())
	assert.Equal(t, 5, f.stockOf(t, "Power Bank"))
}

func TestCompleteSaleStockMovedSinceDrafting(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Earbuds", 2000, 2)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	_, err = f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	// Another terminal sells the stock out from under the draft.
	require.NoError(t, f.db.Model(p).Update("stock", 1).Error)

	_, err = f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  4000,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, f.stockOf(t, "Earbuds"))
}

func TestCompleteSaleCashChangeComputed(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "SD Card", 1800, 5)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	invoice, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  2000,
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, invoice.Change)
}

func TestCompleteSaleCardHasNoTrackedPaidAmount(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "HDMI Cable", 900, 5)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)

	invoice, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCard,
	})
	require.NoError(t, err)
	assert.Nil(t, invoice.PaidAmount)
	assert.Equal(t, 900.0, invoice.PaidOrTotal())
}

func TestCompleteSaleUpsertsCustomerByPhone(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Tempered Glass", 350, 10)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	_, err = f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  350,
		CustomerName:  "Nimal",
		CustomerPhone: "0771234567",
	})
	require.NoError(t, err)

	var customer model.Customer
	require.NoError(t, f.db.Where("phone = ?", "0771234567").First(&customer).Error)
	assert.Equal(t, "Nimal", customer.Name)

	// A second sale on the same phone reuses the record.
	_, err = f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	_, err = f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  350,
		CustomerName:  "Someone Else",
		CustomerPhone: "0771234567",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&model.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Existing name is kept, not overwritten.
	require.NoError(t, f.db.Where("phone = ?", "0771234567").First(&customer).Error)
	assert.Equal(t, "Nimal", customer.Name)
}

func TestDeleteInvoiceRestoresStock(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Laptop Stand", 6500, 4)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	_, err = f.carts.SetLineQty("u1", p.ID, 2)
	require.NoError(t, err)

	invoice, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  19500,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.stockOf(t, "Laptop Stand"))

	require.NoError(t, f.sales.DeleteInvoice(invoice.ID))
	assert.Equal(t, 4, f.stockOf(t, "Laptop Stand"))

	_, err = f.sales.GetInvoice(invoice.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestDeleteInvoiceSkipsDeletedProducts(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Webcam", 5500, 3)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	invoice, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  5500,
	})
	require.NoError(t, err)

	require.NoError(t, f.db.Delete(&model.Product{}, "id = ?", p.ID).Error)

	// Retraction succeeds; nothing to restore for the gone product.
	require.NoError(t, f.sales.DeleteInvoice(invoice.ID))
}

func TestUpdateInvoiceNeverTouchesStock(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Router", 7800, 10)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	_, err = f.carts.SetLineQty("u1", p.ID, 2)
	require.NoError(t, err)

	invoice, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  23400,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, f.stockOf(t, "Router"))

	updated, err := f.sales.UpdateInvoice(invoice.ID, UpdateInvoiceRequest{
		Rows: []InvoiceRowEdit{
			{ItemID: invoice.Items[0].ID, Qty: 1, Price: 7500},
		},
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, 7500.0, updated.Total)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, 1, updated.Items[0].Qty)
	// Edits never reconcile inventory.
	assert.Equal(t, 7, f.stockOf(t, "Router"))
	// Identity fields survive the edit.
	assert.Equal(t, invoice.InvoiceNo, updated.InvoiceNo)
}

func TestUpdateInvoiceDropAllRowsRejected(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Printer Ink", 2200, 5)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	invoice, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  2200,
	})
	require.NoError(t, err)

	_, err = f.sales.UpdateInvoice(invoice.ID, UpdateInvoiceRequest{
		Rows: []InvoiceRowEdit{
			{ItemID: invoice.Items[0].ID, Qty: 0},
		},
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
	}, "admin")
	assert.ErrorIs(t, err, ErrEmptyInvoice)

	// Rejected edit leaves the invoice intact.
	got, err := f.sales.GetInvoice(invoice.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestUpdateInvoiceRecomputesDiscount(t *testing.T) {
	f := newSaleFixture(t)
	p := seedProduct(t, f.db, "Monitor", 25000, 5)

	_, err := f.carts.AddLine("u1", p.ID)
	require.NoError(t, err)
	invoice, err := f.sales.CompleteSale("u1", CompleteSaleRequest{
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		CashTendered:  25000,
	})
	require.NoError(t, err)

	updated, err := f.sales.UpdateInvoice(invoice.ID, UpdateInvoiceRequest{
		Rows:          []InvoiceRowEdit{{ItemID: invoice.Items[0].ID, Qty: 1, Price: 25000}},
		DiscountValue: 10,
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, updated.Discount)
	assert.Equal(t, 22500.0, updated.Total)
}
