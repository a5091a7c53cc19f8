package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"gorm.io/gorm"
)

// SalesSummary aggregates invoices for the sales report header.
type SalesSummary struct {
	Count         int64   `json:"count"`
	Revenue       float64 `json:"revenue"`
	TotalDiscount float64 `json:"total_discount"`
}

// StockStats aggregates the live product table.
type StockStats struct {
	TotalProducts  int64   `json:"total_products"`
	TotalValuation float64 `json:"total_valuation"`
	OutOfStock     int64   `json:"out_of_stock"`
	LowStock       int64   `json:"low_stock"`
}

// ProfitRow is a per-product profit aggregate over sold invoice lines.
// Cost is computed against the product's current buy price; lines whose
// product has been deleted since contribute zero cost, as in the original
// reporting behavior.
type ProfitRow struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
}

// BestSeller is a top-sold product row for the dashboard.
type BestSeller struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
}

type ReportRepository interface {
	SalesSummary(from, to *time.Time) (*SalesSummary, error)
	StockStats() (*StockStats, error)
	ProfitRows(from, to *time.Time) ([]ProfitRow, error)
	BestSellers(limit int) ([]BestSeller, error)
	RevenueBetween(from, to time.Time) (float64, int64, error)
	CostOfSalesBetween(from, to time.Time) (float64, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) SalesSummary(from, to *time.Time) (*SalesSummary, error) {
	var summary SalesSummary
	q := r.db.Model(&model.Invoice{}).
		Select("COUNT(*) as count, COALESCE(SUM(total), 0) as revenue, COALESCE(SUM(discount), 0) as total_discount")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	err := q.Scan(&summary).Error
	return &summary, err
}

func (r *reportRepo) StockStats() (*StockStats, error) {
	var stats StockStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(buy_price * stock), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("stock <= 0").Count(&stats.OutOfStock).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("stock > 0 AND stock <= low_stock").
		Count(&stats.LowStock).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *reportRepo) ProfitRows(from, to *time.Time) ([]ProfitRow, error) {
	q := r.db.Model(&model.InvoiceItem{}).
		Select(`
			invoice_items.product_id as product_id,
			MAX(invoice_items.name) as name,
			COALESCE(MAX(products.category), '') as category,
			SUM(invoice_items.qty) as units_sold,
			SUM(invoice_items.price * invoice_items.qty) as revenue,
			SUM(COALESCE(products.buy_price, 0) * invoice_items.qty) as cost
		`).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Joins("LEFT JOIN products ON products.id = invoice_items.product_id").
		Group("invoice_items.product_id").
		Order("revenue DESC")
	if from != nil {
		q = q.Where("invoices.date >= ?", *from)
	}
	if to != nil {
		q = q.Where("invoices.date <= ?", *to)
	}

	var rows []ProfitRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) BestSellers(limit int) ([]BestSeller, error) {
	var rows []BestSeller
	err := r.db.Model(&model.InvoiceItem{}).
		Select("invoice_items.product_id as product_id, MAX(invoice_items.name) as name, SUM(invoice_items.qty) as qty").
		Group("invoice_items.product_id").
		Order("qty DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) RevenueBetween(from, to time.Time) (float64, int64, error) {
	var revenue float64
	var count int64
	err := r.db.Model(&model.Invoice{}).
		Where("date >= ? AND date < ?", from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&model.Invoice{}).
		Where("date >= ? AND date < ?", from, to).
		Count(&count).Error
	return revenue, count, err
}

func (r *reportRepo) CostOfSalesBetween(from, to time.Time) (float64, error) {
	var cost float64
	err := r.db.Model(&model.InvoiceItem{}).
		Select("COALESCE(SUM(COALESCE(products.buy_price, 0) * invoice_items.qty), 0)").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Joins("LEFT JOIN products ON products.id = invoice_items.product_id").
		Where("invoices.date >= ? AND invoices.date < ?", from, to).
		Scan(&cost).Error
	return cost, err
}
