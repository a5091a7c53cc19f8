package model

import (
	"time"

	"github.com/google/uuid"
)

// Purchase is a stock-in event tied to a supplier. SupplierName and
// ProductName are denormalized snapshots so the record stays meaningful
// after the supplier or product is edited or deleted.
//
// Deleting a Purchase removes the history row only; the stock increase is
// deliberately NOT reverted. Invoice retraction, in contrast, does restore
// stock.
type Purchase struct {
	BaseModel
	SupplierID   uuid.UUID `gorm:"type:uuid;index;not null" json:"supplier_id"`
	SupplierName string    `gorm:"type:varchar(255);not null" json:"supplier_name"`
	ProductID    uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	ProductName  string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Qty          int       `gorm:"not null" json:"qty"`
	UnitCost     float64   `gorm:"not null" json:"unit_cost"`
	TotalCost    float64   `gorm:"not null" json:"total_cost"`
	PaidAmount   float64   `gorm:"not null;default:0" json:"paid_amount"`
	Date         time.Time `gorm:"not null;index" json:"date"`
}

// Outstanding is the payable remainder established by this purchase.
func (p *Purchase) Outstanding() float64 {
	return p.TotalCost - p.PaidAmount
}
