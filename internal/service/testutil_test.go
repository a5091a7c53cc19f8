package service

import (
	"fmt"
	"testing"

	"go-retail-pos/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Product{}, &model.Category{},
		&model.Invoice{}, &model.InvoiceItem{},
		&model.Quotation{}, &model.QuotationItem{},
		&model.Customer{}, &model.Supplier{},
		&model.Purchase{}, &model.Payment{}, &model.Expense{},
		&model.Counter{}, &model.Settings{}, &model.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, sellPrice float64, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:      name,
		Category:  "Accessories",
		BuyPrice:  sellPrice / 2,
		SellPrice: sellPrice,
		Stock:     stock,
		LowStock:  2,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}
