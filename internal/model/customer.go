package model

// Customer is deduplicated by phone number: at most one record per phone.
// Records are created manually or upserted as a side effect of a sale that
// carries a phone number; they are never deleted automatically.
type Customer struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone   string `gorm:"type:varchar(30);uniqueIndex;not null" json:"phone" validate:"required"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
	NIC     string `gorm:"type:varchar(30)" json:"nic"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}
