package service

import (
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStockService(t *testing.T, db *gorm.DB) StockService {
	t.Helper()
	return NewStockService(
		db,
		repository.NewProductRepo(db),
		repository.NewPurchaseRepo(db),
		repository.NewSupplierRepo(db),
		nil,
	)
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *model.Supplier {
	t.Helper()
	s := &model.Supplier{Name: name, Phone: "0112223344"}
	require.NoError(t, db.Create(s).Error)
	return s
}

func TestAddStockRejectsNonPositiveQty(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(t, db)
	p := seedProduct(t, db, "Flash Drive", 1500, 3)

	_, err := svc.AddStock(p.ID, 0, "u1")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.AddStock(p.ID, -5, "u1")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	product, err := svc.AddStock(p.ID, 7, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)
}

func TestRecordPurchaseRequestRequiresRealIDs(t *testing.T) {
	errs := validator.ValidateStruct(RecordPurchaseRequest{Qty: 1, UnitCost: 100})
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, "uuid_required", e.Tag)
	}

	errs = validator.ValidateStruct(RecordPurchaseRequest{
		SupplierID: uuid.New(),
		ProductID:  uuid.New(),
		Qty:        1,
		UnitCost:   100,
	})
	assert.Empty(t, errs)
}

func TestAddStockUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(t, db)

	_, err := svc.AddStock(uuid.New(), 5, "u1")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRecordPurchaseAddsStockAndUpdatesBuyPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(t, db)
	p := seedProduct(t, db, "Toner", 3000, 2)
	s := seedSupplier(t, db, "Acme Supplies")

	purchase, err := svc.RecordPurchase(RecordPurchaseRequest{
		SupplierID: s.ID,
		ProductID:  p.ID,
		Qty:        5,
		UnitCost:   100,
		PaidAmount: 300,
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, 500.0, purchase.TotalCost)
	assert.Equal(t, 200.0, purchase.Outstanding())
	assert.Equal(t, "Acme Supplies", purchase.SupplierName)
	assert.Equal(t, "Toner", purchase.ProductName)

	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 7, got.Stock)
	assert.Equal(t, 100.0, got.BuyPrice)
}

func TestRecordPurchasePaidCannotExceedTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(t, db)
	p := seedProduct(t, db, "Paper Ream", 900, 2)
	s := seedSupplier(t, db, "Paper Co")

	_, err := svc.RecordPurchase(RecordPurchaseRequest{
		SupplierID: s.ID,
		ProductID:  p.ID,
		Qty:        2,
		UnitCost:   100,
		PaidAmount: 500,
	}, "u1")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDeletePurchaseKeepsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(t, db)
	p := seedProduct(t, db, "Label Roll", 450, 1)
	s := seedSupplier(t, db, "Label Co")

	purchase, err := svc.RecordPurchase(RecordPurchaseRequest{
		SupplierID: s.ID,
		ProductID:  p.ID,
		Qty:        9,
		UnitCost:   50,
		PaidAmount: 450,
	}, "u1")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePurchase(purchase.ID))

	// The stock increase survives the record deletion.
	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 10, got.Stock)

	var count int64
	require.NoError(t, db.Model(&model.Purchase{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
