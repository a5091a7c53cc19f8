package model

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
)

// Invoice is a completed, stock-affecting sale record. Line items are value
// snapshots taken at sale time; later edits to the referenced products never
// change an existing invoice.
type Invoice struct {
	BaseModel
	InvoiceNo     string        `gorm:"type:varchar(12);uniqueIndex;not null" json:"invoice_no"`
	CustomerName  string        `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone string        `gorm:"type:varchar(30);index" json:"customer_phone"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
	Subtotal      float64       `gorm:"not null" json:"subtotal"`
	Discount      float64       `gorm:"not null" json:"discount"`
	DiscountValue float64       `gorm:"not null" json:"discount_value"`
	DiscountType  DiscountType  `gorm:"type:varchar(10);not null;default:'percent'" json:"discount_type"`
	Total         float64       `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`

	// PaidAmount nil means "assumed fully paid": the accounts ledger falls
	// back to Total. A non-nil value is an explicitly tracked payment.
	PaidAmount   *float64 `json:"paid_amount,omitempty"`
	CashTendered float64  `json:"cash_tendered"`
	Change       float64  `json:"change"`
	Note         string   `json:"note"`
	Date         time.Time `gorm:"not null;index" json:"date"`
}

// PaidOrTotal resolves the explicit-or-assumed paid amount: an invoice
// without a tracked payment counts as fully paid.
func (i *Invoice) PaidOrTotal() float64 {
	if i.PaidAmount != nil {
		return *i.PaidAmount
	}
	return i.Total
}

// InvoiceItem is a line snapshot. ProductID is a weak reference kept for
// stock restoration and reporting; there is deliberately no FK so history
// survives product deletion.
type InvoiceItem struct {
	BaseModel
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoice_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Qty       int       `gorm:"not null" json:"qty"`
	Serial    string    `gorm:"type:varchar(100)" json:"serial,omitempty"`
	Warranty  string    `gorm:"type:varchar(30)" json:"warranty,omitempty"`
}

// LineTotal is price x qty for this line.
func (it *InvoiceItem) LineTotal() float64 {
	return it.Price * float64(it.Qty)
}
