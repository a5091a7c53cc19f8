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

func newAccountsService(db *gorm.DB) AccountsService {
	return NewAccountsService(
		repository.NewInvoiceRepo(db),
		repository.NewPurchaseRepo(db),
		repository.NewPaymentRepo(db),
		repository.NewCustomerRepo(db),
		repository.NewSupplierRepo(db),
	)
}

func seedInvoice(t *testing.T, db *gorm.DB, phone, name string, total float64, paid *float64) *model.Invoice {
	t.Helper()
	inv := &model.Invoice{
		InvoiceNo:     model.FormatInvoiceNo(nextTestInvoiceNo(t, db)),
		CustomerName:  name,
		CustomerPhone: phone,
		Subtotal:      total,
		Total:         total,
		DiscountType:  model.DiscountPercent,
		PaymentMethod: model.PayCash,
		PaidAmount:    paid,
		Date:          time.Now(),
	}
	require.NoError(t, db.Create(inv).Error)
	return inv
}

func nextTestInvoiceNo(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Invoice{}).Count(&count).Error)
	return model.InvoiceCounterSeed + count + 1
}

func ptr(v float64) *float64 { return &v }

func TestReceivablesTracksUnderpaidInvoices(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	seedInvoice(t, db, "0711111111", "Kamal", 5000, ptr(3000))
	seedInvoice(t, db, "0711111111", "Kamal", 2000, nil) // assumed fully paid
	seedInvoice(t, db, "0722222222", "Sunil", 1000, ptr(1000))

	rows, err := svc.Receivables()
	require.NoError(t, err)

	// Sunil settled; only Kamal owes.
	require.Len(t, rows, 1)
	assert.Equal(t, "0711111111", rows[0].EntityID)
	assert.Equal(t, 2000.0, rows[0].Outstanding)
}

func TestReceivablesWalkInBucket(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	seedInvoice(t, db, "", "", 3000, ptr(1000))
	seedInvoice(t, db, "", "", 500, ptr(500))

	rows, err := svc.Receivables()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, walkInKey, rows[0].EntityID)
	assert.Equal(t, 2000.0, rows[0].Outstanding)
}

func TestReceivablesEpsilonHidesFloatDust(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	// 0.3 short: under the 0.5 threshold, counts as settled.
	seedInvoice(t, db, "0733333333", "Mala", 1000, ptr(999.7))
	// Exactly 0.5 short is still settled; the threshold is inclusive.
	seedInvoice(t, db, "0788888888", "Nadee", 1000, ptr(999.5))
	// 0.51 short stays on the books.
	seedInvoice(t, db, "0799999999", "Piyal", 1000, ptr(999.49))

	rows, err := svc.Receivables()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0799999999", rows[0].EntityID)
	assert.InDelta(t, 0.51, rows[0].Outstanding, 0.0001)
}

func TestPaymentReducesReceivable(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	seedInvoice(t, db, "0744444444", "Ruwan", 8000, ptr(2000))

	payment, err := svc.RecordPayment(model.PaymentCustomer, "0744444444", 6000, "settled in cash", "u1")
	require.NoError(t, err)

	rows, err := svc.Receivables()
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Deleting the payment reintroduces the balance.
	require.NoError(t, svc.DeletePayment(payment.ID))
	rows, err = svc.Receivables()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 6000.0, rows[0].Outstanding)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	_, err := svc.RecordPayment(model.PaymentCustomer, "0755555555", 0, "", "u1")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.RecordPayment(model.PaymentCustomer, "0755555555", -100, "", "u1")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPayablesFromPurchases(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	supplier := seedSupplier(t, db, "Parts Lanka")
	purchase := &model.Purchase{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		ProductName:  "Cables",
		Qty:          10,
		UnitCost:     100,
		TotalCost:    1000,
		PaidAmount:   400,
		Date:         time.Now(),
	}
	require.NoError(t, db.Create(purchase).Error)

	rows, err := svc.Payables()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, supplier.ID.String(), rows[0].EntityID)
	assert.Equal(t, 600.0, rows[0].Outstanding)

	_, err = svc.RecordPayment(model.PaymentSupplier, supplier.ID.String(), 600, "", "u1")
	require.NoError(t, err)

	rows, err = svc.Payables()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPaymentHistoryIncludesSyntheticRows(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	seedInvoice(t, db, "0766666666", "Chamara", 5000, ptr(2000))
	_, err := svc.RecordPayment(model.PaymentCustomer, "0766666666", 1500, "partial", "u1")
	require.NoError(t, err)

	entries, err := svc.PaymentHistory(model.PaymentCustomer, "0766666666")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var synthetic, explicit int
	for _, e := range entries {
		if e.Synthetic {
			synthetic++
			assert.Equal(t, 2000.0, e.Amount)
		} else {
			explicit++
			assert.Equal(t, 1500.0, e.Amount)
		}
	}
	assert.Equal(t, 1, synthetic)
	assert.Equal(t, 1, explicit)
}
