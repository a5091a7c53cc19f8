package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceFilter narrows invoice listings; zero values mean "no filter".
type InvoiceFilter struct {
	Search string
	From   *time.Time
	To     *time.Time
}

type InvoiceRepository interface {
	CreateTx(tx *gorm.DB, invoice *model.Invoice) error
	FindAll(filter InvoiceFilter) ([]model.Invoice, error)
	FindByID(id uuid.UUID) (*model.Invoice, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Invoice, error)
	FindByPhone(phone string) ([]model.Invoice, error)
	ReplaceItemsTx(tx *gorm.DB, invoiceID uuid.UUID, items []model.InvoiceItem) error
	UpdateTx(tx *gorm.DB, invoice *model.Invoice) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	Recent(limit int) ([]model.Invoice, error)
}

type invoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db}
}

func (r *invoiceRepo) CreateTx(tx *gorm.DB, invoice *model.Invoice) error {
	return tx.Create(invoice).Error
}

func (r *invoiceRepo) FindAll(filter InvoiceFilter) ([]model.Invoice, error) {
	var invoices []model.Invoice
	q := r.db.Preload("Items").Order("date DESC")
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("invoice_no LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", like, like, like)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	err := q.Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) FindByID(id uuid.UUID) (*model.Invoice, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *invoiceRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	err := tx.Preload("Items").First(&invoice, "id = ?", id).Error
	return &invoice, err
}

func (r *invoiceRepo) FindByPhone(phone string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.Preload("Items").Where("customer_phone = ?", phone).Order("date DESC").Find(&invoices).Error
	return invoices, err
}

// ReplaceItemsTx swaps the full line set of an invoice. Used by the invoice
// editor, which rewrites items wholesale after dropping zero-qty rows.
func (r *invoiceRepo) ReplaceItemsTx(tx *gorm.DB, invoiceID uuid.UUID, items []model.InvoiceItem) error {
	if err := tx.Where("invoice_id = ?", invoiceID).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = invoiceID
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *invoiceRepo) UpdateTx(tx *gorm.DB, invoice *model.Invoice) error {
	return tx.Omit("Items").Save(invoice).Error
}

func (r *invoiceRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("invoice_id = ?", id).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepo) Recent(limit int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.Preload("Items").Order("date DESC").Limit(limit).Find(&invoices).Error
	return invoices, err
}
