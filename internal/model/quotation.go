package model

import (
	"time"

	"github.com/google/uuid"
)

// QuotationValidity is how long a quotation stays open.
const QuotationValidity = 7 * 24 * time.Hour

// Quotation is a non-binding, non-stock-affecting price proposal. Pricing
// math is identical to Invoice; it consumes the draft cart on creation but
// never touches stock or customers.
type Quotation struct {
	BaseModel
	QuotationNo   string          `gorm:"type:varchar(12);uniqueIndex;not null" json:"quotation_no"`
	CustomerName  string          `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone string          `gorm:"type:varchar(30)" json:"customer_phone"`
	Items         []QuotationItem `gorm:"foreignKey:QuotationID" json:"items"`
	Subtotal      float64         `gorm:"not null" json:"subtotal"`
	Discount      float64         `gorm:"not null" json:"discount"`
	DiscountValue float64         `gorm:"not null" json:"discount_value"`
	DiscountType  DiscountType    `gorm:"type:varchar(10);not null;default:'percent'" json:"discount_type"`
	Total         float64         `gorm:"not null" json:"total"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
	ValidUntil    time.Time       `gorm:"not null" json:"valid_until"`
}

// QuotationItem mirrors InvoiceItem: a value snapshot of the cart line.
type QuotationItem struct {
	BaseModel
	QuotationID uuid.UUID `gorm:"type:uuid;index;not null" json:"quotation_id"`
	ProductID   uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Qty         int       `gorm:"not null" json:"qty"`
}
