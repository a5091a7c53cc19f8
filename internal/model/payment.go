package model

import "time"

type PaymentType string

const (
	PaymentCustomer PaymentType = "customer"
	PaymentSupplier PaymentType = "supplier"
)

// Payment is a purely additive ledger entry reducing an entity's outstanding
// balance in the derived accounts view. EntityID is the customer phone for
// customer payments and the supplier id for supplier payments.
type Payment struct {
	BaseModel
	Type     PaymentType `gorm:"type:varchar(10);not null;index" json:"type"`
	EntityID string      `gorm:"type:varchar(40);not null;index" json:"entity_id"`
	Amount   float64     `gorm:"not null" json:"amount"`
	Note     string      `json:"note"`
	Date     time.Time   `gorm:"not null;index" json:"date"`
}
